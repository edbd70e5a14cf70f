package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"go-tawk/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{
		Server:     config.Server{Environment: "production"},
		LoggerMode: config.LoggerMode{Level: "warn"},
	}
	lg, err := newLogger(cfg, &buf)
	require.NoError(t, err)

	lg.Info("dropped")
	lg.Warn("presence store failed", "user_id", "u1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "presence store failed", entry["msg"])
	assert.Equal(t, "u1", entry["user_id"])
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := newLogger(&config.Config{LoggerMode: config.LoggerMode{Level: "loud"}}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestLogger_ZeroValueIsUsable(t *testing.T) {
	var lg Logger
	assert.NotPanics(t, func() {
		lg.Errorf("value %d", 1)
		lg.With("k", "v").Debug("child")
	})
}
