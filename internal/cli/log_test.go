package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("computed layout") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("resolved register") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("resolved register") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(10 * time.Millisecond)
	prog.done("Rendered pdf")

	if out := buf.String(); !strings.Contains(out, "Rendered pdf") || !strings.Contains(out, "took=") {
		t.Errorf("progress output missing message and duration: %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should fall back to the default logger")
	}
}

func TestRouteRasterLogs(t *testing.T) {
	t.Cleanup(func() { gg.SetLogger(nil) })

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)

	routeRasterLogs(l)
	if gg.Logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("raster logs should be silent at info level")
	}

	l.SetLevel(log.DebugLevel)
	routeRasterLogs(l)
	gg.Logger().Debug("rasterizing", "width", 320)
	if !strings.Contains(buf.String(), "rasterizing") {
		t.Errorf("raster debug log not forwarded: %q", buf.String())
	}
}
