package ggwin

import (
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggwin/internal/logging"
)

// SetLogger configures the logger for ggwin and all its sub-packages.
// By default, ggwin produces no log output. Call SetLogger to enable logging.
//
// The logger is also installed in gg, so drawing diagnostics share the
// same configuration. Pass nil to disable logging.
//
// Log levels used by ggwin:
//   - [slog.LevelDebug]: per-frame diagnostics (skipped frames, dropped moves)
//   - [slog.LevelInfo]: lifecycle events (adapter selected, window created)
//   - [slog.LevelWarn]: soft failures (submission, clipboard, double destroy)
//
// Example:
//
//	ggwin.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
	gg.SetLogger(l)
}

// Logger returns the current logger used by ggwin.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
