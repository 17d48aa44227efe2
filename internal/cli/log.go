package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Laid out 12 nodes (38ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports library events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLayoutStart(_ context.Context, rankDir string, nodeCount int) {
	h.logger.Debug("layout started", "rankdir", rankDir, "nodes", nodeCount)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, rankDir string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "rankdir", rankDir, "duration", d, "err", err)
		return
	}
	h.logger.Debug("layout complete", "rankdir", rankDir, "duration", d)
}

func (h *logHooks) OnImport(name string, nodeCount, linkCount int, err error) {
	if err != nil {
		h.logger.Debug("import failed", "err", err)
		return
	}
	h.logger.Debug("imported topology", "name", name, "nodes", nodeCount, "links", linkCount)
}

func (h *logHooks) OnExport(name string, nodeCount, linkCount, groupCount int, err error) {
	if err != nil {
		h.logger.Debug("export failed", "err", err)
		return
	}
	h.logger.Debug("exported topology", "name", name, "nodes", nodeCount, "links", linkCount, "groups", groupCount)
}
