package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionLogsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log, flush := New(Options{AppName: "Goalnote", Output: &buf})
	defer flush()

	log.Debug("hidden")
	log.Info("goal created", "goal_id", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "goal created", entry["msg"])
	assert.Equal(t, "Goalnote", entry["app"])
	assert.EqualValues(t, 7, entry["goal_id"])
}

func TestDevelopmentLogsTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log, flush := New(Options{Development: true, Output: &buf})
	defer flush()

	log.Debug("query", "table", "todos")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "table=todos")
	assert.NotContains(t, buf.String(), "app=")
}
