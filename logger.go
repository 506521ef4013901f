// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package inkpad

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by inkpad and its host adapters.
// By default inkpad produces no log output. Pass nil to restore the
// silent default.
//
// Log levels used by inkpad:
//   - [slog.LevelDebug]: per-event diagnostics (discarded moves, committed segments)
//   - [slog.LevelInfo]: lifecycle events (ink layer allocated, stroke started/ended)
//   - [slog.LevelWarn]: rejected input (invalid resize, failed stroke rasterization)
//
// Example:
//
//	inkpad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. internal/host calls this so that
// every layer shares one configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
