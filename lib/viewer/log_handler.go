// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusMsg delivers a log record to the model's status bar.
type statusMsg struct {
	Summary string
	Level   slog.Level
}

// statusFadeMsg clears the status message it was scheduled for.
// Generation guards against clearing a newer message.
type statusFadeMsg struct {
	Generation int
}

// statusFadeDelay is how long a status message stays before the help
// line returns.
const statusFadeDelay = 5 * time.Second

// Sender is the part of tea.Program the handler needs.
type Sender interface {
	Send(message tea.Msg)
}

// StatusLogHandler is a slog.Handler that routes records into a
// bubbletea program as status-bar messages. Writing log lines to the
// terminal directly would corrupt the alternate screen.
//
// Records arriving before SetProgram are dropped. Handlers derived
// with WithAttrs or WithGroup share the program pointer.
type StatusLogHandler struct {
	level   slog.Level
	program *atomic.Pointer[Sender]
	attrs   []slog.Attr
	groups  []string
}

// NewStatusLogHandler creates a handler delivering records at or above
// level.
func NewStatusLogHandler(level slog.Level) *StatusLogHandler {
	return &StatusLogHandler{level: level, program: &atomic.Pointer[Sender]{}}
}

// SetProgram sets the receiver of status messages. Safe to call from
// any goroutine.
func (handler *StatusLogHandler) SetProgram(program Sender) {
	handler.program.Store(&program)
}

// Enabled reports whether level reaches the handler's threshold.
func (handler *StatusLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats record as "message (key=value, ...)" and sends it.
func (handler *StatusLogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	prefix := strings.Join(handler.groups, ".")
	if prefix != "" {
		prefix += "."
	}
	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, attr.Key+"="+attr.Value.String())
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, prefix+attr.Key+"="+attr.Value.String())
		return true
	})

	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	(*program).Send(statusMsg{Summary: summary, Level: record.Level})
	return nil
}

// WithAttrs returns a handler with attrs appended.
func (handler *StatusLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &StatusLogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   append(append([]slog.Attr(nil), handler.attrs...), attrs...),
		groups:  append([]string(nil), handler.groups...),
	}
}

// WithGroup returns a handler with name appended to the group path.
func (handler *StatusLogHandler) WithGroup(name string) slog.Handler {
	return &StatusLogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   append([]slog.Attr(nil), handler.attrs...),
		groups:  append(append([]string(nil), handler.groups...), name),
	}
}
