package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmitsJSONWithTimestamp(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("production", "info", &buf)
	require.NoError(t, err)

	log.Info().Str("stage", "validate").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "validate", entry["stage"])
	assert.Contains(t, entry, "time")
}

func TestNewHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("production", "warn", &buf)
	require.NoError(t, err)

	log.Info().Msg("suppressed")
	assert.Empty(t, buf.Bytes())

	log.Warn().Msg("emitted")
	assert.NotEmpty(t, buf.Bytes())
}

func TestNewBlankLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("production", "", &buf)
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("production", "loud")
	assert.Error(t, err)
}
