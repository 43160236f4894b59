package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/geomech/pkg/archive"
	"github.com/matzehuels/geomech/pkg/cache"
	"github.com/matzehuels/geomech/pkg/errors"
	"github.com/matzehuels/geomech/pkg/observability"
)

// Runner executes tools with caching and run archiving.
// Both CLI and API use it so that every entry point records runs the same
// way.
//
// The Runner holds no per-call state; multiple goroutines can share one.
// Cache and archive failures are logged and never fail a call.
type Runner struct {
	Registry *Registry
	Cache    cache.Cache
	Keyer    cache.Keyer
	Archive  archive.Store
	Logger   *log.Logger
	// TTL is the cache lifetime of a result. Zero means cache.TTLResult.
	TTL time.Duration
}

// NewRunner creates a runner. A nil registry means Default(), a nil cache or
// store disables caching or archiving, a nil keyer uses cache.DefaultKeyer
// and a nil logger discards output.
func NewRunner(reg *Registry, c cache.Cache, keyer cache.Keyer, store archive.Store, logger *log.Logger) *Runner {
	if reg == nil {
		reg = Default()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if store == nil {
		store = archive.NewNullStore()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Registry: reg,
		Cache:    c,
		Keyer:    keyer,
		Archive:  store,
		Logger:   logger,
	}
}

// RunOptions tune a single run.
type RunOptions struct {
	// NoCache skips the cache lookup. The fresh result is still stored.
	NoCache bool
}

// RunResult is the outcome of [Runner.Run].
type RunResult struct {
	RunID    string          `json:"run_id"`
	Tool     string          `json:"tool"`
	Cached   bool            `json:"cached"`
	Duration time.Duration   `json:"duration_ns"`
	Output   json.RawMessage `json:"result"`
}

// Run executes the named tool on input. Unknown tools fail before anything
// is recorded; every other call is archived, successful or not.
func (r *Runner) Run(ctx context.Context, name string, input []byte, opts RunOptions) (*RunResult, error) {
	if _, ok := r.Registry.Lookup(name); !ok {
		return nil, errors.New(errors.ErrCodeUnknownTool, "unknown tool %q", name)
	}

	start := time.Now()
	canonical := canonicalJSON(input)
	key := r.Keyer.ToolKey(name, canonical)
	res := &RunResult{RunID: archive.NewID(), Tool: name}

	if !opts.NoCache {
		if out, ok := r.lookup(ctx, key); ok {
			res.Output = out
			res.Cached = true
			res.Duration = time.Since(start)
			r.Logger.Debug("cache hit", "tool", name, "run", res.RunID)
			r.record(ctx, res, canonical, nil)
			return res, nil
		}
	}

	hooks := observability.Tool()
	hooks.OnToolStart(ctx, name)
	out, err := r.Registry.Call(ctx, name, canonical)
	res.Duration = time.Since(start)
	hooks.OnToolComplete(ctx, name, res.Duration, err)

	if err != nil {
		r.Logger.Debug("tool failed", "tool", name, "code", errors.GetCode(err), "err", err)
		r.record(ctx, res, canonical, err)
		return nil, err
	}
	res.Output = out
	r.store(ctx, key, out)
	r.record(ctx, res, canonical, nil)
	r.Logger.Debug("tool complete", "tool", name, "run", res.RunID, "duration", res.Duration)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (json.RawMessage, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit || !json.Valid(data) {
		observability.Cache().OnCacheMiss(ctx, "tool")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "tool")
	return data, true
}

func (r *Runner) store(ctx context.Context, key string, out []byte) {
	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.TTLResult
	}
	if err := r.Cache.Set(ctx, key, out, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "tool", len(out))
}

func (r *Runner) record(ctx context.Context, res *RunResult, input []byte, runErr error) {
	rec := archive.Record{
		ID:        res.RunID,
		Tool:      res.Tool,
		Input:     input,
		Output:    res.Output,
		Cached:    res.Cached,
		Duration:  res.Duration,
		CreatedAt: time.Now().UTC(),
	}
	if runErr != nil {
		rec.ErrorCode = string(errors.GetCode(runErr))
		if rec.ErrorCode == "" {
			rec.ErrorCode = string(errors.ErrCodeInternal)
		}
		rec.Error = runErr.Error()
	}
	if err := r.Archive.Save(ctx, rec); err != nil {
		r.Logger.Warn("archive write failed", "run", res.RunID, "err", err)
	}
}

// canonicalJSON re-encodes a JSON object with sorted keys and no
// insignificant whitespace so equivalent requests share a cache key. Input
// that is not a JSON object is returned unchanged and rejected later by
// the tool.
func canonicalJSON(input []byte) []byte {
	trimmed := bytes.TrimSpace(input)
	if len(trimmed) == 0 {
		return []byte("{}")
	}
	var v map[string]any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil || v == nil || dec.More() {
		return trimmed
	}
	out, err := json.Marshal(v)
	if err != nil {
		return trimmed
	}
	return out
}
