package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewAdapterWithWriter("info", "json", &buf)

	log.Info("Bulk import completed", "total_rows", 2, "succeeded", 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "Bulk import completed", line["message"])
	assert.EqualValues(t, 2, line["total_rows"])
	assert.EqualValues(t, 1, line["succeeded"])
	assert.Equal(t, "api-console", line["service"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewAdapterWithWriter("warn", "json", &buf)

	log.Debug("hidden")
	log.Info("hidden too")
	assert.Zero(t, buf.Len())

	log.Error("visible", fmt.Errorf("boom"))
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestNonStringKeyDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	log := NewAdapterWithWriter("info", "json", &buf)

	assert.NotPanics(t, func() { log.Info("odd", 42, "v", "dangling") })
	assert.Contains(t, buf.String(), `"42":"v"`)
}
