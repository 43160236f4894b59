package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/geomech/pkg/archive"
	"github.com/matzehuels/geomech/pkg/buildinfo"
	"github.com/matzehuels/geomech/pkg/errors"
	"github.com/matzehuels/geomech/pkg/tools"
	"github.com/matzehuels/geomech/pkg/units"
)

const (
	codeInvalidInput = errors.ErrCodeInvalidInput
	codeNotFound     = errors.ErrCodeNotFound
	codeInternal     = errors.ErrCodeInternal
)

// maxRunsLimit caps ?limit on /v1/runs.
const maxRunsLimit = 500

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// toolSummary is one catalogue entry.
type toolSummary struct {
	Name     string         `json:"name"`
	Category tools.Category `json:"category"`
	Summary  string         `json:"summary"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	info := buildinfo.Get()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": info.Version,
		"commit":  info.Commit,
	})
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	category := tools.Category(r.URL.Query().Get("category"))
	if category != "" && !slices.Contains(tools.Categories, category) {
		writeError(w, http.StatusBadRequest, codeInvalidInput, fmt.Sprintf("unknown category %q", category))
		return
	}
	list := s.runner.Registry.List(category)
	out := make([]toolSummary, len(list))
	for i, t := range list {
		out[i] = toolSummary{Name: t.Name, Category: t.Category, Summary: t.Summary}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": out, "count": len(out)})
}

func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	t, ok := s.runner.Registry.Lookup(name)
	if !ok {
		s.writeErr(w, r, errors.New(errors.ErrCodeUnknownTool, "unknown tool %q", name))
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleRunTool(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, codeInvalidInput,
				fmt.Sprintf("request body exceeds %d bytes", MaxBodyBytes))
			return
		}
		writeError(w, http.StatusBadRequest, codeInvalidInput, "read body: "+err.Error())
		return
	}

	var opts tools.RunOptions
	if v := r.URL.Query().Get("no_cache"); v != "" {
		if opts.NoCache, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidInput, fmt.Sprintf("no_cache must be a boolean, got %q", v))
			return
		}
	}

	res, err := s.runner.Run(r.Context(), chi.URLParam(r, "name"), body, opts)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := archive.ListOptions{Tool: q.Get("tool")}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRunsLimit {
			writeError(w, http.StatusBadRequest, codeInvalidInput,
				fmt.Sprintf("limit must be an integer in [1, %d], got %q", maxRunsLimit, v))
			return
		}
		opts.Limit = n
	}
	runs, err := s.runner.Archive.List(r.Context(), opts)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if runs == nil {
		runs = []archive.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	rec, err := s.runner.Archive.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUnits(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, units.System)
}

// =============================================================================
// Responses
// =============================================================================

// statusOf maps an error to its HTTP status and response code.
func statusOf(err error) (int, errors.Code) {
	switch {
	case errors.Is(err, errors.ErrCodeUnknownTool):
		return http.StatusNotFound, errors.ErrCodeUnknownTool
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound, errors.ErrCodeNotFound
	case errors.IsInputError(err):
		return http.StatusBadRequest, errors.GetCode(err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, codeInternal
	}
	return http.StatusInternalServerError, codeInternal
}

// writeErr writes err with its mapped status. Server errors are logged and
// their detail is kept out of the response.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	msg := errors.UserMessage(err)
	switch {
	case status == http.StatusGatewayTimeout:
		msg = "request timed out"
	case status >= http.StatusInternalServerError:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeError(w, status, code, msg)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code errors.Code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}
