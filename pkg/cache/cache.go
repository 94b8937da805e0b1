// Package cache stores computed layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for "galdraw serve" across instances
//   - [NullCache]: stores nothing, selected by --no-cache
//
// Wrap any backend with [Instrument] to report hits, misses and writes to
// the observability hooks.
//
// # Keys
//
// A [Keyer] derives keys from the register and render options. Keys are
// "layout:<sha256>" and "artifact:<sha256>"; a [ScopedKeyer] prepends a
// namespace.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
// A miss is reported as (nil, false, nil), never as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts identifies a layout: the register and the display flags.
type LayoutKeyOpts struct {
	Taps       string `json:"taps"`
	Values     string `json:"values"`
	ShowValues bool   `json:"show_values"`
	ShowNames  bool   `json:"show_names"`
}

// ArtifactKeyOpts identifies a rendered artifact of a layout.
type ArtifactKeyOpts struct {
	VizType string `json:"viz_type"`
	Format  string `json:"format"`
	Engine  string `json:"engine,omitempty"`
	Style   string `json:"style,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	LayoutKey(opts LayoutKeyOpts) string
	ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes its inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

// ArtifactKey returns "artifact:<hash>" over the layout key and render options.
func (DefaultKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutKey, opts)
}

var _ Keyer = DefaultKeyer{}
