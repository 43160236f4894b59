package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/geomech/pkg/errors"
)

// counterValue returns the value of the counter family name whose labels
// include all of want.
func counterValue(t *testing.T, g prometheus.Gatherer, name string, want map[string]string) float64 {
	t.Helper()
	families, err := g.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestPrometheusToolHooks(t *testing.T) {
	ctx := context.Background()
	p, err := NewPrometheus(nil)
	if err != nil {
		t.Fatalf("NewPrometheus: %v", err)
	}

	p.OnToolComplete(ctx, "geomech_vertical_stress", time.Millisecond, nil)
	p.OnToolComplete(ctx, "geomech_vertical_stress", time.Millisecond, nil)
	p.OnToolComplete(ctx, "geomech_vertical_stress", time.Millisecond,
		errors.New(errors.ErrCodeInvalidInput, "depth must be > 0"))
	p.OnToolComplete(ctx, "geomech_vertical_stress", time.Millisecond, context.Canceled)

	g := p.Gatherer()
	tests := []struct {
		status string
		want   float64
	}{
		{"ok", 2},
		{"INVALID_INPUT", 1},
		{"INTERNAL_ERROR", 1},
	}
	for _, tt := range tests {
		got := counterValue(t, g, "geomech_tool_calls_total",
			map[string]string{"tool": "geomech_vertical_stress", "status": tt.status})
		if got != tt.want {
			t.Errorf("calls{status=%s} = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestPrometheusCacheHooks(t *testing.T) {
	ctx := context.Background()
	p, _ := NewPrometheus(nil)

	p.OnCacheMiss(ctx, "tool")
	p.OnCacheSet(ctx, "tool", 42)
	p.OnCacheHit(ctx, "tool")
	p.OnCacheHit(ctx, "tool")

	for event, want := range map[string]float64{"hit": 2, "miss": 1, "set": 1} {
		got := counterValue(t, p.Gatherer(), "geomech_cache_events_total", map[string]string{"event": event})
		if got != want {
			t.Errorf("cache events{event=%s} = %v, want %v", event, got, want)
		}
	}
}

func TestPrometheusHandler(t *testing.T) {
	p, _ := NewPrometheus(nil)
	p.OnResponse(context.Background(), "GET", "/healthz", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `geomech_http_requests_total{code="200",method="GET",route="/healthz"} 1`) {
		t.Errorf("exposition missing request counter:\n%s", rec.Body.String())
	}
}

func TestNewPrometheusDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheus(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPrometheus(reg); err == nil {
		t.Error("second registration on the same registry should fail")
	}
}
