package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/paveg/statdex/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for input, expected := range tests {
		level, err := logging.ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, level, input)
	}

	_, err := logging.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	t.Run("json logger carries load id", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := logging.FromConfig("json", "info", &buf)
		require.NoError(t, err)

		logger.WithLoad("abc").WithAttribute("speed").Info("dataset loaded", "accepted", 2)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "dataset loaded", entry["msg"])
		assert.Equal(t, "abc", entry["load_id"])
		assert.Equal(t, "speed", entry["attribute"])
	})

	t.Run("text logger filters by level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := logging.FromConfig("text", "warn", &buf)
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := logging.FromConfig("xml", "info", &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestNoopLogger(t *testing.T) {
	logger := logging.NoopLogger()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
