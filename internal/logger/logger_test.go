package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"country-aggregator/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for name, want := range testCases {
		assert.Equal(t, want, ParseLevel(name), "level %q", name)
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "info", Format: "json"}, &buf)

	log.Info("upstream call finished", "endpoint", "all", "status", 200)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "upstream call finished", entry["msg"])
	assert.Equal(t, "all", entry["endpoint"])
	assert.Equal(t, float64(200), entry["status"])
}

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "info", Format: "text"}, &buf)

	log.Info("server starting", "port", 5000)

	assert.Contains(t, buf.String(), "msg=\"server starting\"")
	assert.Contains(t, buf.String(), "port=5000")
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestSetup_InstallsDefault(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	log := Setup(config.LogConfig{Level: "error", Format: "json"})

	assert.Same(t, log, slog.Default())
}
