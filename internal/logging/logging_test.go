package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ticklist.log")
	logger, closeLog, err := New(Config{File: path, Level: "debug"})
	require.NoError(t, err)
	defer closeLog()

	logger.Debug("entry toggled", zap.Int64("entry_id", 7))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(data))), &line))
	assert.Equal(t, "entry toggled", line["msg"])
	assert.Equal(t, float64(7), line["entry_id"])
	assert.Equal(t, "debug", line["level"])
}

func TestNewLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticklist.log")
	logger, closeLog, err := New(Config{File: path, Level: "warn"})
	require.NoError(t, err)
	defer closeLog()

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNewInvalidLevel(t *testing.T) {
	_, _, err := New(Config{File: Stderr, Level: "loud"})
	assert.Error(t, err)
}

func TestCloseReleasesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticklist.log")
	logger, closeLog, err := New(Config{File: path})
	require.NoError(t, err)

	logger.Info("last words")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "last words")

	err = closeLog()
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestCloseStderr(t *testing.T) {
	logger, closeLog, err := New(Config{File: Stderr})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closeLog())
	assert.NoError(t, closeLog())
}

func TestNopDiscards(t *testing.T) {
	logger := Nop()
	logger.Error("nothing happens")
	assert.NotNil(t, logger)
}
