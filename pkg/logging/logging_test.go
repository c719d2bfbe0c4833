package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"nonsense", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.name), "level name %q", tt.name)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
}

func TestLogFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)
	defer InitDiscard()

	Debug("Test", "debug message")
	Info("Test", "info message")
	Warn("Test", "warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "subsystem=Test")
}

func TestErrorIncludesErrAttr(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelError, &buf)
	defer InitDiscard()

	Error("Test", errors.New("kaboom"), "something failed")

	out := buf.String()
	assert.Contains(t, out, "something failed")
	assert.Contains(t, out, "kaboom")
}

func TestFormatArgs(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)
	defer InitDiscard()

	Info("Test", "found %d tools on %s", 4, "provider")

	assert.Contains(t, buf.String(), "found 4 tools on provider")
}
