// Package observability lets the server observe alignment runs, cache
// traffic and HTTP requests without the libraries depending on a metrics
// backend.
//
// Libraries emit events through the getters:
//
//	hooks := observability.Pipeline()
//	hooks.OnAlignStart(ctx, rows, cols)
//	// fill the matrix
//	hooks.OnAlignComplete(ctx, rows, cols, time.Since(start), err)
//
// Entry points install implementations once at startup. Until then every
// getter returns a no-op, which is what the CLI runs with. The server
// installs its Prometheus metrics (see server.Metrics.Register).
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks observes the align and render stages of a run. rows and cols
// are the matrix dimensions, sequence length plus one.
type PipelineHooks interface {
	OnAlignStart(ctx context.Context, rows, cols int)
	OnAlignComplete(ctx context.Context, rows, cols int, duration time.Duration, err error)
	// OnTracebackComplete reports the number of optimal alignments found.
	OnTracebackComplete(ctx context.Context, alignments int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks observes cache lookups. keyType is "alignment" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes served requests. route is the matched router pattern,
// never the raw path, so ids do not leak into label values.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnAlignStart(context.Context, int, int)                           {}
func (NoopPipelineHooks) OnAlignComplete(context.Context, int, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnTracebackComplete(context.Context, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every HTTP event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds one installed hook set. The zero slot yields def.
type slot[T any] struct {
	v   atomic.Pointer[T]
	def T
}

func (s *slot[T]) get() T {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return s.def
}

func (s *slot[T]) set(h T) { s.v.Store(&h) }

func (s *slot[T]) reset() { s.v.Store(nil) }

var (
	pipelineSlot = slot[PipelineHooks]{def: NoopPipelineHooks{}}
	cacheSlot    = slot[CacheHooks]{def: NoopCacheHooks{}}
	httpSlot     = slot[HTTPHooks]{def: NoopHTTPHooks{}}
)

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

// Reset uninstalls every hook set. Tests that install hooks call it in
// t.Cleanup.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
