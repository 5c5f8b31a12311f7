package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	l, err := logger.Setup(config.ServerConfig{LogLevel: "debug", Port: 8080})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Same(t, l, slog.Default(), "Setup should install the logger as default")
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"Warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"chatty", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := logger.ParseLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	l := logger.New(buf, "warn")

	l.Info("hidden")
	l.Warn("shown", slog.String("k", "v"))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "v", entries[0]["k"])
}

func TestContextLogger(t *testing.T) {
	fallback, _ := logger.GetTestLogger(t)
	scoped, buf := logger.GetTestLogger(t)

	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), logger.FromContext(context.Background()))

	ctx := logger.WithLogger(context.Background(), scoped.With(slog.String("trace_id", "abc")))
	logger.FromContextOrDefault(ctx, fallback).Info("hello")

	logger.AssertLogContains(t, buf, "hello")
	logger.AssertLogField(t, buf, "trace_id", "abc")
}
