package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "WARN", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "verbose", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func newCapturingSentryHandler(events *[]*sentry.Event) *SentryHandler {
	return &SentryHandler{capture: func(e *sentry.Event) *sentry.EventID {
		*events = append(*events, e)
		return nil
	}}
}

func TestSentryHandler_ForwardsErrorsOnly(t *testing.T) {
	var events []*sentry.Event
	logger := slog.New(newCapturingSentryHandler(&events)).With("service", "bridge")

	logger.Info("seal response", "status", 200)
	logger.Error("seal request failed", "request_id", "abc", "error", errors.New("dial tcp: refused"))

	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "seal request failed", e.Message)
	assert.Equal(t, sentry.LevelError, e.Level)
	assert.Equal(t, "abc", e.Tags["request_id"])
	assert.Equal(t, "dial tcp: refused", e.Extra["error"])
	assert.Equal(t, "bridge", e.Extra["service"])
}

func TestSentryHandler_GroupPrefixesKeys(t *testing.T) {
	var events []*sentry.Event
	logger := slog.New(newCapturingSentryHandler(&events)).WithGroup("seal")

	logger.Error("boom", "status", 500)

	require.Len(t, events, 1)
	assert.EqualValues(t, 500, events[0].Extra["seal.status"])
}

func TestSentryHandler_TagsFromLoggerAttrs(t *testing.T) {
	var events []*sentry.Event
	logger := slog.New(newCapturingSentryHandler(&events)).With("request_id", "req-1", "method", "GET")

	logger.Error("seal request failed", "error", errors.New("timeout"))

	require.Len(t, events, 1)
	assert.Equal(t, "req-1", events[0].Tags["request_id"])
	assert.Equal(t, "timeout", events[0].Tags["error"])
	assert.Equal(t, "GET", events[0].Extra["method"])
}

func TestSentryHandler_AttrsKeepTheirOwnGroup(t *testing.T) {
	var events []*sentry.Event
	logger := slog.New(newCapturingSentryHandler(&events)).
		With("service", "bridge").
		WithGroup("seal").
		With("path", "/subscriptions")

	logger.Error("boom", "status", 502)

	require.Len(t, events, 1)
	extra := events[0].Extra
	assert.Equal(t, "bridge", extra["service"])
	assert.Equal(t, "/subscriptions", extra["seal.path"])
	assert.EqualValues(t, 502, extra["seal.status"])
	assert.NotContains(t, extra, "seal.service")
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestMultiHandler_DeliversToEveryHandler(t *testing.T) {
	var buf bytes.Buffer
	var events []*sentry.Event
	text := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	m := NewMultiHandler(failingHandler{text}, text, newCapturingSentryHandler(&events))
	err := m.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "upstream down", 0))

	assert.EqualError(t, err, "sink down")
	assert.Contains(t, buf.String(), "upstream down")
	assert.Len(t, events, 1)

	assert.True(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, NewMultiHandler(newCapturingSentryHandler(&events)).Enabled(context.Background(), slog.LevelWarn))
}
