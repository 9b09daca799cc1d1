// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command
// operations at the given level. When stderr is a terminal, it uses
// slog.TextHandler for human-readable output; when stderr is piped or
// redirected (scripts, CI), it uses slog.JSONHandler for
// machine-parseable output.
func NewCommandLogger(level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

// FanoutHandler duplicates every record to all wrapped handlers. The
// view command uses it to log to a file and the in-UI status line at
// the same time.
type FanoutHandler struct {
	handlers []slog.Handler
}

// NewFanoutHandler wraps the given handlers. Nil entries are skipped.
func NewFanoutHandler(handlers ...slog.Handler) *FanoutHandler {
	kept := make([]slog.Handler, 0, len(handlers))
	for _, handler := range handlers {
		if handler != nil {
			kept = append(kept, handler)
		}
	}
	return &FanoutHandler{handlers: kept}
}

// Enabled reports whether any wrapped handler wants the level.
func (f *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range f.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every wrapped handler that wants its
// level. The first error is returned after all handlers run: one
// broken sink must not starve the others.
func (f *FanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, handler := range f.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// WithAttrs derives every wrapped handler.
func (f *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make([]slog.Handler, len(f.handlers))
	for index, handler := range f.handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: derived}
}

// WithGroup derives every wrapped handler.
func (f *FanoutHandler) WithGroup(name string) slog.Handler {
	derived := make([]slog.Handler, len(f.handlers))
	for index, handler := range f.handlers {
		derived[index] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: derived}
}
