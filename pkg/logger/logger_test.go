package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/runboard/pkg/config"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "log output: %s", buf.String())
	return entry
}

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			NewWithWriter(&buf, &config.Config{Env: "development", LogLevel: tt.level})
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, &config.Config{Env: "staging", LogLevel: "debug", LogFormat: "json"})

	log.WithFields(map[string]interface{}{
		"generation": "abc123",
		"records":    42,
	}).Info("Roster generation installed")

	entry := decode(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Roster generation installed", entry["message"])
	assert.Equal(t, "runboard", entry["service"])
	assert.Equal(t, "staging", entry["env"])
	assert.Equal(t, "abc123", entry["generation"])
	assert.Equal(t, float64(42), entry["records"])
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, &config.Config{Env: "development", LogLevel: "info", LogFormat: "console"})
	log.Info("leaderboard ready")

	assert.True(t, strings.Contains(buf.String(), "leaderboard ready"))
	assert.False(t, json.Valid(buf.Bytes()), "console output is not JSON")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, &config.Config{Env: "production", LogLevel: "warn"})

	log.Debug("hidden")
	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Equal(t, "warn", decode(t, &buf)["level"])
}

func TestWithFieldAndError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, &config.Config{Env: "development", LogLevel: "debug"})

	log.WithField("metric", "total_distance").WithError(errors.New("invalid metric kind")).Error("query failed")

	entry := decode(t, &buf)
	assert.Equal(t, "total_distance", entry["metric"])
	assert.Equal(t, "invalid metric kind", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestFormattedMethods(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, &config.Config{Env: "development", LogLevel: "debug"})

	log.Infof("loaded %d records", 12)
	assert.Equal(t, "loaded 12 records", decode(t, &buf)["message"])

	buf.Reset()
	log.Warnf("unit %s unknown", "furlong")
	assert.Equal(t, "unit furlong unknown", decode(t, &buf)["message"])
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("dropped")
	log.WithField("k", "v").Error("dropped")
	assert.Equal(t, zerolog.Disabled, log.Zerolog().GetLevel())
}
