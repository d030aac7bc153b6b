package logging

import (
	"context"
	"log/slog"
)

// teeHandler hands every record to each member handler that accepts its level.
type teeHandler struct {
	members []slog.Handler
}

// TeeHandler combines handlers. Nil entries are ignored; a single handler is
// returned as is and none yields a discarding handler.
func TeeHandler(handlers ...slog.Handler) slog.Handler {
	var members []slog.Handler
	for _, h := range handlers {
		if h != nil {
			members = append(members, h)
		}
	}
	switch len(members) {
	case 0:
		return slog.DiscardHandler
	case 1:
		return members[0]
	}
	return &teeHandler{members: members}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, m := range h.members {
		if m.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, m := range h.members {
		if !m.Enabled(ctx, record.Level) {
			continue
		}
		if err := m.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(m slog.Handler) slog.Handler { return m.WithAttrs(attrs) })
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return h.each(func(m slog.Handler) slog.Handler { return m.WithGroup(name) })
}

func (h *teeHandler) each(fn func(slog.Handler) slog.Handler) slog.Handler {
	next := make([]slog.Handler, len(h.members))
	for i, m := range h.members {
		next[i] = fn(m)
	}
	return &teeHandler{members: next}
}
