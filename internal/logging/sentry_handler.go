package logging

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// SentryHandler is an slog.Handler that forwards ERROR+ records to Sentry.
// Attributes added through WithAttrs keep the group prefix in effect when
// they were added.
type SentryHandler struct {
	attrs   []slog.Attr
	tags    map[string]string
	group   string
	capture func(*sentry.Event) *sentry.EventID
}

func NewSentryHandler() *SentryHandler {
	return &SentryHandler{capture: sentry.CaptureEvent}
}

// Enabled only handles ERROR and above.
func (h *SentryHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *SentryHandler) Handle(_ context.Context, record slog.Record) error {
	event := sentry.NewEvent()
	event.Level = sentry.LevelError
	event.Message = record.Message
	event.Timestamp = record.Time
	event.Logger = "slog"

	for k, v := range h.tags {
		event.Tags[k] = v
	}

	extra := make(map[string]interface{}, len(h.attrs)+record.NumAttrs())
	for _, a := range h.attrs {
		extra[a.Key] = extraValue(a.Value)
	}
	record.Attrs(func(a slog.Attr) bool {
		if isTagKey(a.Key) {
			event.Tags[a.Key] = a.Value.String()
		}
		extra[h.key(a.Key)] = extraValue(a.Value)
		return true
	})
	if len(extra) > 0 {
		event.Extra = extra
	}

	h.capture(event)
	return nil
}

func isTagKey(k string) bool {
	return k == "request_id" || k == "error"
}

func (h *SentryHandler) key(k string) string {
	if h.group == "" {
		return k
	}
	return h.group + "." + k
}

func (h *SentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	next.tags = make(map[string]string, len(h.tags))
	for k, v := range h.tags {
		next.tags[k] = v
	}
	for _, a := range attrs {
		if isTagKey(a.Key) {
			next.tags[a.Key] = a.Value.String()
		}
		next.attrs = append(next.attrs, slog.Attr{Key: h.key(a.Key), Value: a.Value})
	}
	return &next
}

func (h *SentryHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = h.key(name)
	return &next
}

// extraValue keeps Sentry extras JSON-friendly; error values otherwise
// serialize as {}.
func extraValue(v slog.Value) interface{} {
	v = v.Resolve()
	if err, ok := v.Any().(error); ok {
		return err.Error()
	}
	return v.Any()
}
