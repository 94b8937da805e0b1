package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/galdraw/pkg/cache"
	"github.com/matzehuels/galdraw/pkg/errors"
	"github.com/matzehuels/galdraw/pkg/layout"
)

func newTestRunner(t *testing.T, c cache.Cache) (*Runner, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	return NewRunner(c, nil, logger), &buf
}

func TestExecuteNative(t *testing.T) {
	r, logs := newTestRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{
		Taps:    "1001",
		Values:  "1110",
		Formats: []string{"svg", "json", "tikz", "pdf", "png"},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.RunID == "" {
		t.Error("missing run id")
	}
	if res.Stats.Length != 4 || res.Stats.Feedback != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if len(res.Layout.Boxes()) != 4 {
		t.Errorf("boxes = %d", len(res.Layout.Boxes()))
	}
	for _, f := range []string{"svg", "json", "tikz", "pdf", "png"} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !bytes.HasPrefix(res.Artifacts["pdf"], []byte("%PDF")) {
		t.Error("pdf artifact has no PDF header")
	}
	if !bytes.HasPrefix(res.Artifacts["png"], []byte("\x89PNG")) {
		t.Error("png artifact has no PNG header")
	}
	if !strings.Contains(string(res.Artifacts["tikz"]), `\begin{tikzpicture}`) {
		t.Error("tikz artifact is not a tikzpicture")
	}

	var meta struct {
		Taps     string `json:"taps"`
		Feedback uint8  `json:"feedback"`
	}
	if err := json.Unmarshal(res.Artifacts["json"], &meta); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if meta.Taps != "1001" || meta.Feedback != 1 {
		t.Errorf("json metadata = %+v", meta)
	}

	if !strings.Contains(logs.String(), "run_id="+res.RunID) {
		t.Errorf("logs do not carry run_id:\n%s", logs.String())
	}
}

func TestExecuteValidationBeforeLayout(t *testing.T) {
	r, logs := newTestRunner(t, nil)
	_, err := r.Execute(context.Background(), Options{Taps: "1001", Values: "11"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
	if strings.Contains(logs.String(), "computed layout") {
		t.Error("layout ran despite invalid input")
	}
}

func TestExecuteCacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r, _ := newTestRunner(t, fc)
	ctx := context.Background()
	opts := Options{Taps: "10110", Values: "01101", Formats: []string{"svg", "json"}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit the cache: %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed the cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}
	if len(second.Layout.Primitives) != len(first.Layout.Primitives) {
		t.Error("cached layout differs")
	}

	refreshed := opts
	refreshed.Refresh = true
	third, err := r.Execute(ctx, refreshed)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("refresh read from cache: %+v", third.CacheInfo)
	}
}

func TestExecutePartialCacheHit(t *testing.T) {
	fc, _ := cache.NewFileCache(t.TempDir())
	r, _ := newTestRunner(t, fc)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Formats: []string{"svg"}}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Formats: []string{"svg", "tikz"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("render hit reported with a missing format")
	}
	if len(res.Artifacts["svg"]) == 0 || len(res.Artifacts["tikz"]) == 0 {
		t.Error("missing artifacts")
	}
}

func TestExecuteHiddenLabelsChangeKey(t *testing.T) {
	fc, _ := cache.NewFileCache(t.TempDir())
	r, _ := newTestRunner(t, fc)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Formats: []string{"svg"}}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, Options{Formats: []string{"svg"}, HideValues: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("hidden values reused the labelled layout")
	}
	if res.Layout.Options.ShowValues {
		t.Error("layout shows values")
	}
}

func TestExecuteNodelinkDOT(t *testing.T) {
	r, _ := newTestRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{
		VizType: VizTypeNodelink,
		Formats: []string{"dot"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(res.Artifacts["dot"]), "digraph LFSR") {
		t.Errorf("dot = %s", res.Artifacts["dot"])
	}
}

func TestExecuteLaTeXWithoutTools(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err == nil {
		t.Skip("pdflatex installed")
	}
	r, _ := newTestRunner(t, nil)
	res, err := r.Execute(context.Background(), Options{
		Engine:  EngineLaTeX,
		Formats: []string{"svg", "pdf"},
	})
	if !errors.Is(err, errors.ErrCodeToolUnavailable) {
		t.Fatalf("err = %v, want TOOL_UNAVAILABLE", err)
	}
	if res == nil || len(res.Artifacts["svg"]) == 0 {
		t.Error("svg rendered before the latex step should be returned")
	}
}

func TestLayoutCached(t *testing.T) {
	fc, _ := cache.NewFileCache(t.TempDir())
	r, _ := newTestRunner(t, fc)
	ctx := context.Background()
	opts := Options{Taps: "11", Values: "10"}

	s, hit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil || hit {
		t.Fatalf("first layout: hit=%v err=%v", hit, err)
	}
	cached, hit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil || !hit {
		t.Fatalf("second layout: hit=%v err=%v", hit, err)
	}
	if cached.Feedback != s.Feedback || cached.Config != s.Config {
		t.Error("cached stream differs")
	}
	if _, ok := cached.Primitives[0].(layout.Box); !ok {
		t.Errorf("first cached primitive is %T", cached.Primitives[0])
	}
}
