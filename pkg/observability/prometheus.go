package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/geomech/pkg/errors"
)

// Prometheus records hook events as Prometheus metrics. It implements
// [ToolHooks], [CacheHooks] and [HTTPHooks].
type Prometheus struct {
	gatherer     prometheus.Gatherer
	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	cacheEvents  *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheus creates the geomech collectors and registers them with reg.
// A nil reg uses a fresh registry.
func NewPrometheus(reg *prometheus.Registry) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	p := &Prometheus{
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geomech_tool_calls_total",
			Help: "Tool calls by tool and outcome. status is ok or the error code.",
		}, []string{"tool", "status"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geomech_tool_duration_seconds",
			Help:    "Tool execution time, including cache lookups.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"tool"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geomech_cache_events_total",
			Help: "Result cache events: hit, miss or set.",
		}, []string{"event"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geomech_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geomech_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
	p.gatherer = reg
	for _, c := range []prometheus.Collector{p.toolCalls, p.toolDuration, p.cacheEvents, p.httpRequests, p.httpDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}

// Gatherer returns the registry the collectors were registered with.
func (p *Prometheus) Gatherer() prometheus.Gatherer {
	return p.gatherer
}

func (p *Prometheus) OnToolStart(context.Context, string) {}

func (p *Prometheus) OnToolComplete(_ context.Context, tool string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = string(errors.ErrCodeInternal)
		if code := errors.GetCode(err); code != "" {
			status = string(code)
		}
	}
	p.toolCalls.WithLabelValues(tool, status).Inc()
	p.toolDuration.WithLabelValues(tool).Observe(d.Seconds())
}

func (p *Prometheus) OnCacheHit(context.Context, string) {
	p.cacheEvents.WithLabelValues("hit").Inc()
}

func (p *Prometheus) OnCacheMiss(context.Context, string) {
	p.cacheEvents.WithLabelValues("miss").Inc()
}

func (p *Prometheus) OnCacheSet(context.Context, string, int) {
	p.cacheEvents.WithLabelValues("set").Inc()
}

func (p *Prometheus) OnRequest(context.Context, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}

var (
	_ ToolHooks  = (*Prometheus)(nil)
	_ CacheHooks = (*Prometheus)(nil)
	_ HTTPHooks  = (*Prometheus)(nil)
)
