package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/medfluent/internal/config"
	"github.com/phrazzld/medfluent/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriterLevels(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	testCases := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"WARN", false, false},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}
			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tc.level, LogFormat: "json"}, buf)
			require.NoError(t, err)
			require.NotNil(t, l)

			l.Debug("debug message")
			l.Info("info message")

			assert.Equal(t, tc.debugSeen, contains(buf, "debug message"))
			assert.Equal(t, tc.infoSeen, contains(buf, "info message"))
			assert.Same(t, l, slog.Default())
		})
	}
}

func TestSetupJSONFields(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info", LogFormat: "json"}, buf)
	require.NoError(t, err)

	l.Info("lesson completed", "lesson_id", "u1l1", "xp", 15)

	logger.AssertLogField(t, buf, "msg", "lesson completed")
	logger.AssertLogField(t, buf, "lesson_id", "u1l1")
	logger.AssertLogField(t, buf, "xp", float64(15))
}

func TestSetupTextFormat(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	buf := &logger.TestLogBuffer{}
	l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info", LogFormat: "text"}, buf)
	require.NoError(t, err)

	l.Info("hearts depleted", "hearts", 0)
	logger.AssertLogContains(t, buf, "msg=\"hearts depleted\"")
	logger.AssertLogContains(t, buf, "hearts=0")
}

func TestContextLogger(t *testing.T) {
	t.Parallel()
	scoped, buf := logger.NewTestLogger(t)
	fallback, fallbackBuf := logger.NewTestLogger(t)

	ctx := logger.WithLogger(context.Background(), scoped.With("trace_id", "abc"))
	logger.FromContextOrDefault(ctx, fallback).Info("scoped")
	logger.AssertLogField(t, buf, "trace_id", "abc")
	assert.Empty(t, fallbackBuf.String())

	logger.FromContextOrDefault(context.Background(), fallback).Info("fallback")
	logger.AssertLogContains(t, fallbackBuf, "fallback")

	assert.NotNil(t, logger.FromContext(context.Background()))
	assert.NotNil(t, logger.FromContextOrDefault(context.Background(), nil))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	level, ok := logger.ParseLevel("Debug")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, level)

	level, ok = logger.ParseLevel("fatal")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func contains(buf *logger.TestLogBuffer, s string) bool {
	entries, err := buf.GetLogEntries()
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e["msg"] == s {
			return true
		}
	}
	return false
}
