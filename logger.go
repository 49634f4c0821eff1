package arscene

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/rm8x/arscene/capture"
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
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for arscene and its sub-packages.
// By default, arscene produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically. Pass nil to disable logging (restore default silent
// behavior).
//
// Log levels used by arscene:
//   - [slog.LevelDebug]: per-event pose routing, frame acquisition
//   - [slog.LevelWarn]: dropped frames, events for unregistered markers
//     arriving in unusual volume
//
// Example:
//
//	// Enable info-level logging to stderr:
//	arscene.SetLogger(slog.Default())
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	// Propagate to the capture package so video sources log through
	// the same configuration.
	capture.SetLogger(l)
}

// Logger returns the currently configured logger. Never nil.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
