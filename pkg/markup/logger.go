// SPDX-FileCopyrightText: © 2023 Hugh Cameron
//
// SPDX-License-Identifier: MIT

package markup

import (
	"context"
	"fmt"
	"log/slog"
)

// logRecorder is a [slog.Handler] that copies every record to the
// markup's log list before passing it to the wrapped handler.
type logRecorder struct {
	handler slog.Handler
	m       *Markup
}

func newLogRecorder(handler slog.Handler, m *Markup) *logRecorder {
	return &logRecorder{handler: handler, m: m}
}

func (h *logRecorder) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *logRecorder) Handle(ctx context.Context, r slog.Record) error {
	h.m.Logs = append(h.m.Logs, fmt.Sprintf("%s %s", r.Level, r.Message))

	if h.handler.Enabled(ctx, r.Level) {
		return h.handler.Handle(ctx, r)
	}
	return nil
}

func (h *logRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &logRecorder{handler: h.handler.WithAttrs(attrs), m: h.m}
}

func (h *logRecorder) WithGroup(name string) slog.Handler {
	return &logRecorder{handler: h.handler.WithGroup(name), m: h.m}
}
