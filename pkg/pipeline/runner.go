package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/galdraw/pkg/cache"
	"github.com/matzehuels/galdraw/pkg/layout"
	"github.com/matzehuels/galdraw/pkg/lfsr"
)

// Runner executes pipeline runs against a cache. The CLI and the HTTP
// server each hold one. It keeps no per-run state and may be shared by
// concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// LayoutTTL and ArtifactTTL default to cache.TTLLayout and cache.TTLArtifact.
	LayoutTTL   time.Duration
	ArtifactTTL time.Duration
}

// NewRunner wraps c with [cache.Instrument]. Nil arguments select the
// default keyer, no caching and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       cache.Instrument(c),
		Keyer:       keyer,
		Logger:      logger,
		LayoutTTL:   cache.TTLLayout,
		ArtifactTTL: cache.TTLArtifact,
	}
}

// Execute runs the complete resolve → layout → render pipeline with caching.
// Invalid options abort before any layout work. When a render step fails,
// the partial result is returned with the error.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Register:  opts.Register(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("run_id", result.RunID)
	opts.Logger = logger

	logger.Debug("resolved register",
		"taps", result.Register.Taps.String(),
		"values", result.Register.Values.String(),
		"length", result.Register.Len())

	layoutStart := time.Now()
	stream, layoutHit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = stream
	result.CacheInfo.LayoutHit = layoutHit
	result.Stats = Stats{
		Length:     result.Register.Len(),
		Primitives: len(stream.Primitives),
		Feedback:   stream.Feedback,
		LayoutTime: time.Since(layoutStart),
	}

	logger.Info("computed layout",
		"length", result.Stats.Length,
		"feedback", result.Stats.Feedback,
		"primitives", result.Stats.Primitives,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Register, stream, opts)
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	if err != nil {
		return result, err
	}

	logger.Info("rendered outputs",
		"type", opts.VizType,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo builds the layout stream with caching and returns
// cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (layout.Stream, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Stream{}, false, err
	}
	key := r.Keyer.LayoutKey(opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached layout.Stream
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true, nil
			}
			// Undecodable entries fall through to a rebuild.
		} else if err != nil {
			r.Logger.Warn("layout cache read failed", "err", err)
		}
	}

	s, err := ComputeLayout(ctx, opts.Register(), opts.LayoutOptions())
	if err != nil {
		return layout.Stream{}, false, err
	}

	if data, err := json.Marshal(s); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.LayoutTTL); err != nil {
			r.Logger.Warn("layout cache write failed", "err", err)
		}
	}
	return s, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, opts Options) (layout.Stream, error) {
	s, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return s, err
}

// RenderWithCacheInfo renders artifacts with caching. Formats found in the
// cache are not rendered again; the hit flag is true only when every
// requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, reg lfsr.Register, s layout.Stream, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	layoutKey := r.Keyer.LayoutKey(opts.LayoutKeyOpts())

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, reg, s, renderOpts)

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ArtifactTTL); err != nil {
			r.Logger.Warn("artifact cache write failed", "format", format, "err", err)
		}
	}
	return artifacts, false, err
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
