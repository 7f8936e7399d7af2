package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// setSingletonForTest temporarily replaces the singleton logger and
// restores the original when the test completes.
func setSingletonForTest(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := singleton.Load()
	singleton.Store(zap.New(core).Sugar())
	t.Cleanup(func() { singleton.Store(prev) })
	return logs
}

func TestLogLevels(t *testing.T) { //nolint:paralleltest // mutates singleton
	tests := []struct {
		name  string
		logFn func()
		want  string
	}{
		{"Debug", func() { Debug("debug msg") }, "debug msg"},
		{"Debugf", func() { Debugf("debug %s", "formatted") }, "debug formatted"},
		{"Info", func() { Info("info msg") }, "info msg"},
		{"Infof", func() { Infof("info %s", "formatted") }, "info formatted"},
		{"Warn", func() { Warn("warn msg") }, "warn msg"},
		{"Error", func() { Error("error msg") }, "error msg"},
	}

	for _, tt := range tests {
		logs := setSingletonForTest(t)
		tt.logFn()
		require.Equal(t, 1, logs.Len(), tt.name)
		assert.Equal(t, tt.want, logs.All()[0].Message, tt.name)
	}
}

func TestInfowIncludesKeyValuePairs(t *testing.T) {
	logs := setSingletonForTest(t)

	Infow("fan-out dispatched", "call_id", "abc-123", "nodes", 3)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "fan-out dispatched", entry.Message)
	assert.Equal(t, "abc-123", entry.ContextMap()["call_id"])
}

func TestInitializeSwitchesLevel(t *testing.T) {
	prev := singleton.Load()
	t.Cleanup(func() { singleton.Store(prev) })

	Initialize(false)
	assert.False(t, current().Desugar().Core().Enabled(zapcore.DebugLevel))

	Initialize(true)
	assert.True(t, current().Desugar().Core().Enabled(zapcore.DebugLevel))
}
