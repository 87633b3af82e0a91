package surfacehost

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called from a goroutine other than the UI goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for surfacehost and all its sub-packages.
// By default, surfacehost produces no log output.
//
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by surfacehost:
//   - [slog.LevelDebug]: surface notifications, frame ticks, pointer events
//   - [slog.LevelInfo]: attach/detach, pause/resume, engine init/destroy
//   - [slog.LevelWarn]: stale surface notifications, ordering violations under DontCheck
//   - [slog.LevelError]: fatal engine failures
//
// Example:
//
//	surfacehost.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by surfacehost.
// Sub-packages (frameloop, native, host, engine/soft) call this to share the
// same logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
