package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Adrixx117/Investments/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, config.LogConfig{Level: "warn", Format: "json"})

	l.Info("hidden")
	l.Warn("shown", "type", "etf")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "etf", entry["type"])
}

func TestNewWithWriter_InvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, config.LogConfig{Level: "loud"})

	assert.Contains(t, buf.String(), "invalid log level")
	buf.Reset()
	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
