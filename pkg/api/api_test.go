package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/geomech/pkg/archive"
	"github.com/matzehuels/geomech/pkg/buildinfo"
	"github.com/matzehuels/geomech/pkg/cache"
	"github.com/matzehuels/geomech/pkg/observability"
	"github.com/matzehuels/geomech/pkg/tools"
)

func newTestServer(t *testing.T, metrics http.Handler) *Server {
	t.Helper()
	dir := t.TempDir()
	fc, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	store, err := archive.NewSQLiteStore(filepath.Join(dir, "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return New(Options{
		Runner:         tools.NewRunner(nil, fc, nil, store, nil),
		Metrics:        metrics,
		RequestTimeout: 5 * time.Second,
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("%s %s: Content-Type = %q", method, target, ct)
	}
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, target, rec.Body.String(), err)
	}
	return rec.Code, m
}

func errorCode(m map[string]any) string {
	e, _ := m["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	code, m := do(t, s, http.MethodGet, "/healthz", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if m["status"] != "ok" || m["version"] != buildinfo.Get().Version {
		t.Errorf("body = %v", m)
	}
}

func TestListTools(t *testing.T) {
	s := newTestServer(t, nil)
	tests := []struct {
		query     string
		wantCode  int
		wantCount float64
	}{
		{"", http.StatusOK, float64(tools.Default().Len())},
		{"?category=stress", http.StatusOK, 6},
		{"?category=fault", http.StatusOK, 1},
		{"?category=geology", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			code, m := do(t, s, http.MethodGet, "/v1/tools"+tt.query, "")
			if code != tt.wantCode {
				t.Fatalf("status = %d, want %d", code, tt.wantCode)
			}
			if code != http.StatusOK {
				if errorCode(m) != "INVALID_INPUT" {
					t.Errorf("error = %v", m)
				}
				return
			}
			if m["count"] != tt.wantCount {
				t.Errorf("count = %v, want %v", m["count"], tt.wantCount)
			}
			first := m["tools"].([]any)[0].(map[string]any)
			if first["name"] == "" || first["summary"] == "" {
				t.Errorf("entry = %v", first)
			}
			if _, ok := first["fields"]; ok {
				t.Error("catalogue entries should not carry fields")
			}
		})
	}
}

func TestGetTool(t *testing.T) {
	s := newTestServer(t, nil)

	code, m := do(t, s, http.MethodGet, "/v1/tools/geomech_vertical_stress", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if m["name"] != "geomech_vertical_stress" || m["category"] != "stress" {
		t.Errorf("tool = %v", m)
	}
	if fields, _ := m["fields"].([]any); len(fields) == 0 {
		t.Error("tool has no fields")
	}

	code, m = do(t, s, http.MethodGet, "/v1/tools/geomech_nope", "")
	if code != http.StatusNotFound || errorCode(m) != "UNKNOWN_TOOL" {
		t.Errorf("unknown tool = %d %v", code, m)
	}
}

func TestRunToolCaching(t *testing.T) {
	s := newTestServer(t, nil)
	const path = "/v1/tools/geomech_vertical_stress"

	code, first := do(t, s, http.MethodPost, path, `{"depth": 10000}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, body %v", code, first)
	}
	if first["cached"] != false || first["tool"] != "geomech_vertical_stress" || first["run_id"] == "" {
		t.Errorf("first = %v", first)
	}
	result := first["result"].(map[string]any)
	if v := result["value"].(float64); v < 10010 || v > 10011 {
		t.Errorf("vertical stress = %v", v)
	}

	_, second := do(t, s, http.MethodPost, path, `{ "depth" : 10000 }`)
	if second["cached"] != true {
		t.Errorf("equivalent request not served from cache: %v", second)
	}
	if second["run_id"] == first["run_id"] {
		t.Error("cached run reused the run id")
	}

	_, third := do(t, s, http.MethodPost, path+"?no_cache=true", `{"depth": 10000}`)
	if third["cached"] != false {
		t.Errorf("no_cache run = %v", third)
	}
}

func TestRunToolErrors(t *testing.T) {
	s := newTestServer(t, nil)
	tests := []struct {
		name     string
		target   string
		body     string
		wantCode int
		wantErr  string
	}{
		{"malformed json", "/v1/tools/geomech_vertical_stress", `{"depth":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing field", "/v1/tools/geomech_vertical_stress", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"out of range", "/v1/tools/geomech_vertical_stress", `{"depth": -5}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"insufficient", "/v1/tools/geomech_elastic_moduli_conversion", `{"youngs_modulus": 1e6}`, http.StatusBadRequest, "INSUFFICIENT_INPUT"},
		{"unknown tool", "/v1/tools/geomech_nope", `{}`, http.StatusNotFound, "UNKNOWN_TOOL"},
		{"bad no_cache", "/v1/tools/geomech_vertical_stress?no_cache=maybe", `{"depth": 1}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"body too large", "/v1/tools/geomech_vertical_stress", `{"pad": "` + strings.Repeat("x", MaxBodyBytes) + `"}`, http.StatusRequestEntityTooLarge, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, m := do(t, s, http.MethodPost, tt.target, tt.body)
			if code != tt.wantCode {
				t.Errorf("status = %d, want %d (%v)", code, tt.wantCode, m)
			}
			if got := errorCode(m); got != tt.wantErr {
				t.Errorf("code = %q, want %q", got, tt.wantErr)
			}
			if e := m["error"].(map[string]any); e["message"] == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestRuns(t *testing.T) {
	s := newTestServer(t, nil)

	_, ok := do(t, s, http.MethodPost, "/v1/tools/geomech_vertical_stress", `{"depth": 5000}`)
	do(t, s, http.MethodPost, "/v1/tools/geomech_vertical_stress", `{}`)
	code, mc := do(t, s, http.MethodPost, "/v1/tools/geomech_rock_strength_mohr_coulomb",
		`{"cohesion": 500, "friction_angle": 30, "effective_stress_min": 2000}`)
	if code != http.StatusOK {
		t.Fatalf("mohr coulomb = %d %v", code, mc)
	}
	if ucs := mc["result"].(map[string]any)["unconfined_strength"].(float64); math.Abs(ucs-1732.05) > 0.01 {
		t.Errorf("unconfined_strength = %v", ucs)
	}

	code, m := do(t, s, http.MethodGet, "/v1/runs", "")
	if code != http.StatusOK || m["count"] != 3.0 {
		t.Fatalf("runs = %d %v", code, m)
	}

	_, m = do(t, s, http.MethodGet, "/v1/runs?tool=geomech_vertical_stress&limit=1", "")
	runs := m["runs"].([]any)
	if len(runs) != 1 || runs[0].(map[string]any)["tool"] != "geomech_vertical_stress" {
		t.Errorf("filtered runs = %v", runs)
	}

	id := ok["run_id"].(string)
	code, rec := do(t, s, http.MethodGet, "/v1/runs/"+id, "")
	if code != http.StatusOK || rec["id"] != id || rec["error_code"] != nil {
		t.Errorf("run %s = %d %v", id, code, rec)
	}

	code, m = do(t, s, http.MethodGet, "/v1/runs/does-not-exist", "")
	if code != http.StatusNotFound || errorCode(m) != "NOT_FOUND" {
		t.Errorf("missing run = %d %v", code, m)
	}

	code, _ = do(t, s, http.MethodGet, "/v1/runs?limit=0", "")
	if code != http.StatusBadRequest {
		t.Errorf("limit=0 status = %d", code)
	}
}

func TestUnits(t *testing.T) {
	s := newTestServer(t, nil)
	code, m := do(t, s, http.MethodGet, "/v1/units", "")
	if code != http.StatusOK || len(m) == 0 {
		t.Errorf("units = %d %v", code, m)
	}
}

func TestRouting(t *testing.T) {
	s := newTestServer(t, nil)
	code, m := do(t, s, http.MethodGet, "/v2/anything", "")
	if code != http.StatusNotFound || errorCode(m) != "NOT_FOUND" {
		t.Errorf("unknown route = %d %v", code, m)
	}
	code, _ = do(t, s, http.MethodDelete, "/v1/tools/geomech_vertical_stress", "")
	if code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE status = %d", code)
	}
}

func TestMetrics(t *testing.T) {
	prom, err := observability.NewPrometheus(nil)
	if err != nil {
		t.Fatal(err)
	}
	observability.SetToolHooks(prom)
	observability.SetHTTPHooks(prom)
	t.Cleanup(observability.Reset)

	s := newTestServer(t, prom.Handler())
	do(t, s, http.MethodPost, "/v1/tools/geomech_vertical_stress", `{"depth": 1000}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`geomech_tool_calls_total{status="ok",tool="geomech_vertical_stress"} 1`,
		`route="/v1/tools/{name}"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}

func TestListenAndServe(t *testing.T) {
	s := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrc := make(chan net.Addr, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- s.ListenAndServe(ctx, "127.0.0.1:0", func(a net.Addr) { addrc <- a })
	}()

	var addr net.Addr
	select {
	case addr = <-addrc:
	case err := <-errc:
		t.Fatalf("ListenAndServe: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Post("http://"+addr.String()+"/v1/tools/geomech_vertical_stress",
		"application/json", bytes.NewBufferString(`{"depth": 2000}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("shutdown error = %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}
