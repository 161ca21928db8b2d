package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for raw, expected := range cases {
		assert.Equal(t, expected, ParseLevel(raw), "level %q", raw)
	}
}

func TestNewLoggerHonoursLevel(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		log, err := NewLogger("warn", format, "kidtracker")
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel), format)
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel), format)
	}
}
