package observability

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDefaultsDiscard(t *testing.T) {
	Reset()
	ctx := context.Background()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T, want NoopPipelineHooks", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	Pipeline().OnLayoutComplete(ctx, 4, 17, time.Second, nil)
	Pipeline().OnRenderComplete(ctx, "register", []string{"svg"}, time.Second, nil)
	Cache().OnCacheSet(ctx, "artifact", 1024)
	HTTP().OnError(ctx, "GET", "/v1/lfsr.svg", nil)
}

type layoutCounter struct {
	NoopPipelineHooks
	starts atomic.Int32
}

func (c *layoutCounter) OnLayoutStart(context.Context, int) { c.starts.Add(1) }

type keyRecorder struct {
	NoopCacheHooks
	keys []string
}

func (r *keyRecorder) OnCacheHit(_ context.Context, keyType string) {
	r.keys = append(r.keys, keyType)
}

type statusRecorder struct {
	NoopHTTPHooks
	status int
}

func (r *statusRecorder) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	r.status = status
}

func TestSetHooks(t *testing.T) {
	defer Reset()
	ctx := context.Background()

	lc := &layoutCounter{}
	kr := &keyRecorder{}
	sr := &statusRecorder{}
	SetPipelineHooks(lc)
	SetCacheHooks(kr)
	SetHTTPHooks(sr)

	Pipeline().OnLayoutStart(ctx, 8)
	Pipeline().OnLayoutStart(ctx, 8)
	Cache().OnCacheHit(ctx, "layout")
	HTTP().OnResponse(ctx, "GET", "/healthz", 204, 0)

	if got := lc.starts.Load(); got != 2 {
		t.Errorf("layout starts = %d, want 2", got)
	}
	if len(kr.keys) != 1 || kr.keys[0] != "layout" {
		t.Errorf("cache hits = %v, want [layout]", kr.keys)
	}
	if sr.status != 204 {
		t.Errorf("status = %d, want 204", sr.status)
	}

	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(lc) {
		t.Error("SetPipelineHooks(nil) replaced the registered hooks")
	}

	Reset()
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("after Reset HTTP() = %T", HTTP())
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(l)
	h.Register()
	defer Reset()

	ctx := context.Background()
	Pipeline().OnLayoutStart(ctx, 4)
	Cache().OnCacheHit(ctx, "artifact")
	HTTP().OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"layout start", "length=4", "cache hit", "key_type=artifact", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnCacheMiss(context.Background(), "layout")
	if buf.Len() != 0 {
		t.Errorf("debug hook logged at info level: %s", buf.String())
	}
}
