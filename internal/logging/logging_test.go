package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLoggerWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelWarn, "json", &buf)
	logger.Info("hidden")
	logger.Warn("task dropped", "task", "x")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "task dropped", rec["msg"])
	assert.Equal(t, "x", rec["task"])

	buf.Reset()
	NewLoggerWithWriter(slog.LevelInfo, "text", &buf).Info("run started")
	assert.Contains(t, buf.String(), `msg="run started"`)
}
