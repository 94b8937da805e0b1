package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/galdraw/pkg/cache"
)

func TestCachePathCommand(t *testing.T) {
	c, _ := newTestCLI(t)
	out, err := run(t, c, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), "galdraw")
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	c, _ := newTestCLI(t)
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"layout:a", "artifact:b", "artifact:c"} {
		if err := fc.Set(ctx, k, []byte("x"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	out, err := run(t, c, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 3 cached entries") {
		t.Errorf("unexpected output: %q", out)
	}
	if _, hit, _ := fc.Get(ctx, "layout:a"); hit {
		t.Error("entry survived cache clear")
	}
}

func TestNewCacheHonoursConfig(t *testing.T) {
	c, _ := newTestCLI(t)
	c.Config.Cache.Disabled = true
	got, err := c.newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(cache.NullCache); !ok {
		t.Errorf("disabled cache should be a NullCache, got %T", got)
	}

	c.Config.Cache.Disabled = false
	c.Config.Cache.TTL = "1h"
	r, err := c.newRunner(false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if r.ArtifactTTL != time.Hour || r.LayoutTTL != time.Hour {
		t.Errorf("TTL from config not applied: %v/%v", r.LayoutTTL, r.ArtifactTTL)
	}
}
