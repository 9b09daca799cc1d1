// Copyright 2026 The Varscope Authors
// SPDX-License-Identifier: Apache-2.0

package variantui

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusLogMsg delivers a slog record to the model for display in the
// status line above the help bar.
type statusLogMsg struct {
	// Summary is the one-line "message (key=value, ...)" form.
	Summary string

	// Structured is the full JSON-encoded record, kept so a terminal
	// selection of the status line has a complete version to copy
	// from the log file.
	Structured string

	// Level drives warn-versus-error styling.
	Level slog.Level
}

// statusLogFadeMsg clears the status line after the fade delay.
type statusLogFadeMsg struct {
	// seq matches the fade tick to the message it was scheduled
	// for, so an older tick cannot clear a newer message.
	seq int
}

// statusLogFadeDelay is how long a log line stays on the status line
// before the help bar returns.
const statusLogFadeDelay = 5 * time.Second

// StatusLogHandler is a slog.Handler routing records into a running
// bubbletea program. Records below the configured level are dropped,
// as are records arriving before SetProgram is called.
//
// Handlers derived through WithAttrs/WithGroup share the program
// pointer, so one SetProgram call covers every derived handler.
type StatusLogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	groups  []string
}

// NewStatusLogHandler creates a handler delivering records at or
// above level. Call SetProgram once the tea.Program exists.
func NewStatusLogHandler(level slog.Level) *StatusLogHandler {
	return &StatusLogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram installs the program that receives status messages.
// Safe to call from any goroutine.
func (handler *StatusLogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled reports whether records at level reach the status line.
func (handler *StatusLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record and sends it into the program.
func (handler *StatusLogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	var summary strings.Builder
	summary.WriteString(record.Message)

	pairs := make([]string, 0, len(handler.attrs)+record.NumAttrs())
	for _, attr := range handler.attrs {
		pairs = append(pairs, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		pairs = append(pairs, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})
	if len(pairs) > 0 {
		summary.WriteString(" (")
		summary.WriteString(strings.Join(pairs, ", "))
		summary.WriteString(")")
	}

	program.Send(statusLogMsg{
		Summary:    summary.String(),
		Structured: handler.structuredRecord(record),
		Level:      record.Level,
	})
	return nil
}

// WithAttrs returns a derived handler with attrs appended. The
// derived handler shares the program pointer.
func (handler *StatusLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &StatusLogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   append(slices.Clone(handler.attrs), attrs...),
		groups:  slices.Clone(handler.groups),
	}
}

// WithGroup returns a derived handler with the group name appended.
func (handler *StatusLogHandler) WithGroup(name string) slog.Handler {
	return &StatusLogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   slices.Clone(handler.attrs),
		groups:  append(slices.Clone(handler.groups), name),
	}
}

func (handler *StatusLogHandler) structuredRecord(record slog.Record) string {
	fields := map[string]any{
		"time":  record.Time.Format(time.RFC3339),
		"level": record.Level.String(),
		"msg":   record.Message,
	}
	for _, attr := range handler.attrs {
		fields[attr.Key] = attr.Value.String()
	}
	record.Attrs(func(attr slog.Attr) bool {
		fields[attr.Key] = attr.Value.String()
		return true
	})

	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Sprintf(`{"msg":%q,"error":"marshal failed"}`, record.Message)
	}
	return string(data)
}
