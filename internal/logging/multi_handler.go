package logging

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler sends each record to every child that accepts its level:
// stdout JSON for everything, system_logs for errors. A failing child does
// not stop the others.
type MultiHandler struct {
	children []slog.Handler
}

// NewMultiHandler skips nil children so optional sinks can be passed as-is.
func NewMultiHandler(children ...slog.Handler) *MultiHandler {
	m := &MultiHandler{}
	for _, h := range children {
		if h != nil {
			m.children = append(m.children, h)
		}
	}
	return m
}

func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.children {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range m.children {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	out := &MultiHandler{children: make([]slog.Handler, len(m.children))}
	for i, h := range m.children {
		out.children[i] = fn(h)
	}
	return out
}
