package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	require.NoError(t, Init("debug", true))
	require.NoError(t, Init("info", false))
	assert.Error(t, Init("loud", false))
}

func TestLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	Debug("hidden")
	Info("export built", "rows", 3)
	Warn("publish failed", "err", "boom")
	Error("store down")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "export built", entries[0].Message)
	assert.Equal(t, int64(3), entries[0].ContextMap()["rows"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}
