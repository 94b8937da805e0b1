// Package cli implements the galdraw command-line interface.
//
// # Commands
//
//   - render: lay out an LFSR and write PDF, PNG, EPS, SVG, TikZ, JSON or DOT
//   - inspect: print the cells, the feedback bit and the layout parameters
//   - edit: toggle taps and values in a terminal editor and render on demand
//   - serve: HTTP API over the same pipeline
//   - cache: clear or locate the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// registers log-backed observability hooks. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/galdraw/pkg/cache"
	"github.com/matzehuels/galdraw/pkg/config"
	"github.com/matzehuels/galdraw/pkg/pipeline"
)

const appName = cache.AppName

// Levels accepted by [New].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI is the state the commands share: the logger and the loaded
// configuration.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is loaded before each command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel changes the verbosity of c.Logger and of the rasterizer.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	routeRasterLogs(c.Logger)
}

// loadConfig reads the config file and warns about keys it does not know.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	for _, k := range cfg.Unknown {
		c.Logger.Warn("unknown config key", "key", k, "path", cfg.Path)
	}
	return nil
}

// newRunner builds a pipeline runner over the local cache, honoring the
// configured TTL.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	fc, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(fc, nil, c.Logger)
	if ttl, err := c.Config.CacheTTL(); err == nil {
		r.LayoutTTL, r.ArtifactTTL = ttl, ttl
	}
	return r, nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newRemoteCache connects to Redis for the HTTP server.
func (c *CLI) newRemoteCache(ctx context.Context, url string) (cache.Cache, error) {
	rc, err := cache.NewRedisCache(ctx, url)
	if err != nil {
		return nil, err
	}
	return rc, nil
}

var cacheDir = cache.DefaultDir

// openOutput opens path for writing; "-" is stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
