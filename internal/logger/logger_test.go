package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewWithWriter_TextColorsErrors(t *testing.T) {
	t.Setenv("ENV", "local")

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Debug("hidden")
	log.Error("store unavailable", "path", "students.db")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "\x1b[31mstore unavailable\x1b[0m")
	assert.Contains(t, out, "path=students.db")
}

func TestNewWithWriter_JSONInProd(t *testing.T) {
	t.Setenv("ENV", "prod")

	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug").With(slog.String("service", "student-console"))
	log.Info("student created", "student_id", "STD-001")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "student created", entry["msg"])
	assert.Equal(t, "STD-001", entry["student_id"])
	assert.Equal(t, "student-console", entry["service"])
}
