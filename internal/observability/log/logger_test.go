package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func newObserved(level Level) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(toZapLevel(level))
	return &Logger{zapLogger: zap.New(core), zapLevel: toZapLevel(level)}, logs
}

func TestLoggerLevels(t *testing.T) {
	logger, logs := newObserved(LevelInfo)

	logger.Debug("hidden")
	logger.Info("shown")
	logger.Warn("also shown")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "shown", entries[0].Message)
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestLoggerFields(t *testing.T) {
	logger, logs := newObserved(LevelDebug)

	logger.Info("msg",
		Bool("flag", true),
		Int("count", 3),
		String("name", "batch"),
		Error(errors.New("boom")),
		Any("extra", []int{1, 2}),
	)

	require.Len(t, logs.All(), 1)
	fields := logs.All()[0].ContextMap()
	require.Equal(t, true, fields["flag"])
	require.Equal(t, int64(3), fields["count"])
	require.Equal(t, "batch", fields["name"])
	require.Equal(t, "boom", fields["error"])
}

func TestLoggerWith(t *testing.T) {
	logger, logs := newObserved(LevelDebug)

	child := logger.With(String("component", "coalescer"))
	child.Info("msg")

	require.Equal(t, "coalescer", logs.All()[0].ContextMap()["component"])
}

func TestLoggerLevelAccessors(t *testing.T) {
	logger, _ := newObserved(LevelDebug)
	require.Equal(t, LevelDebug, logger.GetLevel())
	logger.SetLevel(LevelError)
	require.Equal(t, LevelError, logger.GetLevel())
}

func TestProvideDefaultsToNop(t *testing.T) {
	require.NotNil(t, Provide())
}
