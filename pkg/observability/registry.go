package observability

import "sync/atomic"

// slot holds the active implementation of one hook interface.
type slot[T any] struct {
	v    atomic.Pointer[T]
	noop T
}

func newSlot[T any](noop T) *slot[T] {
	return &slot[T]{noop: noop}
}

func (s *slot[T]) load() T {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return s.noop
}

func (s *slot[T]) store(h T) { s.v.Store(&h) }
func (s *slot[T]) reset()    { s.v.Store(nil) }

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks installs h for pipeline events. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.store(h)
	}
}

// SetCacheHooks installs h for cache events. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.store(h)
	}
}

// SetHTTPHooks installs h for HTTP events. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.store(h)
	}
}

// Pipeline returns the active pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.load() }

// Cache returns the active cache hooks.
func Cache() CacheHooks { return cacheSlot.load() }

// HTTP returns the active HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.load() }

// Reset puts every stream back to discarding events. Tests use it to undo
// a registration.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
