// Package observability lets galdraw report what it is doing without
// depending on a particular metrics or logging backend.
//
// Three event streams exist: [PipelineHooks] for layout and render runs,
// [CacheHooks] for cache traffic and [HTTPHooks] for requests handled by
// "galdraw serve". Until something is registered, each stream discards its
// events, so call sites never check for nil:
//
//	observability.Pipeline().OnLayoutStart(ctx, reg.Len())
//
// [LogHooks] is the implementation the CLI installs with --verbose.
package observability

import (
	"context"
	"time"
)

// PipelineHooks observes layout and render runs. length is the register
// length and primitives the number of shapes the layout produced.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, length int)
	OnLayoutComplete(ctx context.Context, length, primitives int, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, vizType string, formats []string)
	OnRenderComplete(ctx context.Context, vizType string, formats []string, duration time.Duration, err error)
}

// CacheHooks observes cache lookups and writes. keyType is "layout" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes the HTTP API.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	// OnError sees handler failures before they are mapped to a status code.
	OnError(ctx context.Context, method, path string, err error)
}

// NoopPipelineHooks discards pipeline events. Embed it to observe a subset.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error)         {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}
