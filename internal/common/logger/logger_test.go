// internal/common/logger/logger_test.go
package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestForComponent_AddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := ForComponent(NewZapAdapter(zap.New(core)), "job-parser")

	log.WithError(errors.New("boom")).Warn("fallback used", map[string]interface{}{"lang": "de"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "fallback used", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "job-parser", fields["component"])
	assert.Equal(t, "de", fields["lang"])
	assert.Equal(t, "boom", fields["error"])
}

func TestForComponent_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		ForComponent(nil, "x").Info("ok", nil)
	})
}

func TestNewWithOutput_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "advisor.log")

	l := NewWithOutput("warn", "json", path)
	l.Info("dropped")
	l.Warn("kept", zap.String("stage", "parse"))
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), `"msg":"kept"`)
	assert.Contains(t, string(data), `"stage":"parse"`)
}
