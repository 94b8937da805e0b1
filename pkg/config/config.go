// Package config loads galdraw's TOML configuration file.
//
// # Lookup
//
// [Find] checks, in order: the --config flag, $GALDRAW_CONFIG,
// $XDG_CONFIG_HOME/galdraw/config.toml and ~/.config/galdraw/config.toml.
// A missing file at an implicit location means defaults; a missing file
// named explicitly is an error.
//
// # Example
//
//	[render]
//	format = "pdf,svg"
//	engine = "native"
//
//	[style]
//	name = "blueprint"
//	stroke = "#ff0000"
//
//	[cache]
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/galdraw/pkg/cache"
	"github.com/matzehuels/galdraw/pkg/errors"
	"github.com/matzehuels/galdraw/pkg/pipeline"
	"github.com/matzehuels/galdraw/pkg/render/register/styles"
)

// EnvVar names the environment variable holding a config path.
const EnvVar = "GALDRAW_CONFIG"

// Config is the parsed configuration file.
type Config struct {
	Render RenderConfig `toml:"render"`
	Style  StyleConfig  `toml:"style"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`

	// Path is the file the values were read from, empty for defaults.
	Path string `toml:"-"`

	// Unknown lists keys present in the file that galdraw does not use.
	Unknown []string `toml:"-"`
}

// RenderConfig holds defaults for "galdraw render".
type RenderConfig struct {
	Format     string `toml:"format"`
	Engine     string `toml:"engine"`
	Type       string `toml:"type"`
	Output     string `toml:"output"`
	HideValues bool   `toml:"hide_values"`
	HideNames  bool   `toml:"hide_names"`
}

// StyleConfig selects a named palette and overrides individual fields.
type StyleConfig struct {
	Name string `toml:"name"`
	styles.Palette
}

// CacheConfig controls the artifact cache.
type CacheConfig struct {
	Disabled bool   `toml:"disabled"`
	TTL      string `toml:"ttl"`
}

// ServerConfig holds defaults for "galdraw serve".
type ServerConfig struct {
	Addr     string `toml:"addr"`
	RedisURL string `toml:"redis_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Format: pipeline.DefaultFormat,
			Engine: pipeline.DefaultEngine,
			Type:   pipeline.DefaultVizType,
			Output: "lfsr",
		},
		Style: StyleConfig{Name: styles.Default().Name},
		Cache: CacheConfig{TTL: cache.TTLArtifact.String()},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Find returns the config file path to use. explicit reports whether the
// path came from the flag or the environment.
func Find(flag string) (path string, explicit bool) {
	if flag != "" {
		return flag, true
	}
	if env := os.Getenv(EnvVar); env != "" {
		return env, true
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, cache.AppName, "config.toml"), false
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".config", cache.AppName, "config.toml"), false
}

// Load resolves the path with [Find] and decodes the file on top of
// [Default].
func Load(flag string) (Config, error) {
	path, explicit := Find(flag)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s: %s", path, errors.UserMessage(err))
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML data on top of [Default] and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid TOML: %v", err)
	}
	for _, k := range md.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, k.String())
	}
	sort.Strings(cfg.Unknown)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every selector and colour.
func (c Config) Validate() error {
	if err := pipeline.ValidateEngine(c.Render.Engine); err != nil {
		return err
	}
	if err := pipeline.ValidateVizType(c.Render.Type); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Render.Type, pipeline.ParseFormats(c.Render.Format)); err != nil {
		return err
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// Palette returns the named palette with the file's overrides applied.
func (c Config) Palette() (styles.Palette, error) {
	p, err := styles.Lookup(c.Style.Name)
	if err != nil {
		return styles.Palette{}, err
	}
	p = p.Merge(c.Style.Palette)
	return p, p.Validate()
}

// Overrides returns the style fields set in the file, or nil when none are.
func (c Config) Overrides() *styles.Palette {
	if c.Style.Palette == (styles.Palette{}) {
		return nil
	}
	p := c.Style.Palette
	return &p
}

// CacheTTL parses the cache TTL. Zero means entries never expire.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid cache.ttl %q", c.Cache.TTL)
	}
	if d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return d, nil
}
