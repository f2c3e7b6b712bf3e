package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestLoggerWritesFieldsAndSource(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(WithoutFile(), WithWriter(&buf), WithLevel(zerolog.DebugLevel))
	require.NoError(t, err)
	defer log.Close()

	log.Debug("queried tree", "nodes", 3, "binary", "swaymsg")
	log.Error("menu failed", errors.New("boom"), "menu", "bemenu")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "queried tree", lines[0]["message"])
	assert.EqualValues(t, 3, lines[0]["nodes"])
	assert.Equal(t, "swaymsg", lines[0]["binary"])
	assert.Equal(t, "logger_test.go", lines[0]["file"])

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "boom", lines[1]["error"])
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(WithoutFile(), WithWriter(&buf))
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
	assert.Equal(t, zerolog.InfoLevel, log.Level())
}

func TestLoggerIgnoresMalformedFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(WithoutFile(), WithWriter(&buf))
	require.NoError(t, err)

	log.Info("odd", "key", "value", 42, "skipped", "dangling")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "value", lines[0]["key"])
	assert.NotContains(t, lines[0], "dangling")
}

func TestLoggerWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")
	log, err := NewLogger(WithFile(path))
	require.NoError(t, err)

	log.Info("to file", "app", "foot")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Contains(t, string(data), "app=foot")
}

func TestAddWriter(t *testing.T) {
	log, err := NewLogger(WithoutFile())
	require.NoError(t, err)

	var buf bytes.Buffer
	log.AddWriter(&buf)
	log.Warn("late writer")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Info("nothing")
	log.Error("nothing", errors.New("x"))
	assert.NoError(t, log.Close())
}
