// Package api serves the geomechanics tools over HTTP.
//
// # Routes
//
//	GET  /healthz            liveness and build version
//	GET  /v1/tools           tool catalogue, optionally ?category=
//	GET  /v1/tools/{name}    one tool with its fields and example
//	POST /v1/tools/{name}    run a tool on the JSON body, ?no_cache=true skips the cache
//	GET  /v1/runs            archived runs, newest first, ?tool= and ?limit=
//	GET  /v1/runs/{id}       one archived run
//	GET  /v1/units           the unit system
//	GET  /metrics            Prometheus exposition, when a metrics handler is set
//
// Every tool call goes through a [tools.Runner], so the API caches and
// archives exactly like the CLI.
//
// # Errors
//
// Failures are written as {"error": {"code": ..., "message": ...}}. Input
// errors are 400, unknown tools and runs 404, oversized bodies 413, timeouts
// 504 and everything else 500.
package api

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/geomech/pkg/tools"
)

// MaxBodyBytes caps the size of a tool request body.
const MaxBodyBytes = 1 << 20

// shutdownTimeout bounds graceful shutdown in [Server.ListenAndServe].
const shutdownTimeout = 10 * time.Second

// Options configures a [Server].
type Options struct {
	// Runner executes tools. Nil means a runner over the default registry
	// without cache or archive.
	Runner *tools.Runner
	// Logger receives one line per request. Nil discards output.
	Logger *log.Logger
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	// RequestTimeout cancels slow requests. Zero disables the timeout.
	RequestTimeout time.Duration
}

// Server is the HTTP API.
type Server struct {
	runner  *tools.Runner
	logger  *log.Logger
	metrics http.Handler
	timeout time.Duration
	router  chi.Router
}

// New builds the router.
func New(opts Options) *Server {
	if opts.Runner == nil {
		opts.Runner = tools.NewRunner(nil, nil, nil, nil, nil)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s := &Server{
		runner:  opts.Runner,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		timeout: opts.RequestTimeout,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(observeRequests)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeInvalidInput, r.Method+" not allowed on "+r.URL.Path)
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/tools", s.handleListTools)
		r.Get("/tools/{name}", s.handleGetTool)
		r.Post("/tools/{name}", s.handleRunTool)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Get("/units", s.handleUnits)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. ready, when non-nil, receives the bound address once the
// listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if ready != nil {
		ready(ln.Addr())
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", shutdownTimeout)
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
