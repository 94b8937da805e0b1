package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
)

// newLogger writes leveled, timestamped records to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// routeRasterLogs forwards gg's slog records to l at debug level and mutes
// them otherwise.
func routeRasterLogs(l *log.Logger) {
	var sl *slog.Logger
	if l.GetLevel() <= log.DebugLevel {
		sl = slog.New(l.WithPrefix("gg"))
	}
	gg.SetLogger(sl)
}

// progress logs how long a command took, e.g. "Rendered svg, pdf (12ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Info(msg, "took", time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger installed by the root command, or
// the package default outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
