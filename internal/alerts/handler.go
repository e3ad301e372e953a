package alerts

import (
	"context"
	"log/slog"

	"grimoire/internal/models"
)

// Handler is a slog.Handler that passes every record to next and also feeds
// records at or above level into the pipeline. The pipeline logs its own
// failures at warn, so level should stay above warn to avoid feedback.
type Handler struct {
	next     slog.Handler
	pipeline *Pipeline
	level    slog.Level
	source   string
	attrs    []slog.Attr
}

// NewHandler wraps next. Forwarded events carry source as their origin.
func NewHandler(next slog.Handler, pipeline *Pipeline, level slog.Level, source string) *Handler {
	return &Handler{next: next, pipeline: pipeline, level: level, source: source}
}

// Enabled reports whether next handles the level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle writes the record and forwards it when it is severe enough.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level && h.pipeline != nil {
		fields := make(map[string]any, len(h.attrs)+r.NumAttrs())
		for _, a := range h.attrs {
			fields[a.Key] = attrValue(a)
		}
		r.Attrs(func(a slog.Attr) bool {
			fields[a.Key] = attrValue(a)
			return true
		})
		h.pipeline.HandleAsync(&models.LogEvent{
			Level:   levelName(r.Level),
			Message: r.Message,
			Source:  h.source,
			Context: fields,
		})
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs returns a handler carrying attrs on both paths.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.next = h.next.WithAttrs(attrs)
	c.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &c
}

// WithGroup returns a handler whose output is grouped. Forwarded events keep
// flat context keys.
func (h *Handler) WithGroup(name string) slog.Handler {
	c := *h
	c.next = h.next.WithGroup(name)
	return &c
}

// attrValue flattens an attribute for JSON; errors become their message.
func attrValue(a slog.Attr) any {
	v := a.Value.Resolve().Any()
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return v
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return models.LevelError
	case l >= slog.LevelWarn:
		return models.LevelWarn
	case l >= slog.LevelInfo:
		return models.LevelInfo
	default:
		return models.LevelDebug
	}
}
