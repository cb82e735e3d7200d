package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv(EnvDB, "")

	cfg, err := Load(DefaultPath())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tempDir, "ticklist", "ticklist.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(tempDir, "ticklist", "logs", "ticklist.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.ExportDir)
}

func TestLoadWithFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv(EnvDB, "")

	path := DefaultPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	content := "db_path: /tmp/custom.db\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	// unset fields still get defaults
	assert.Equal(t, filepath.Join(tempDir, "ticklist", "logs", "ticklist.log"), cfg.LogFile)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesDBPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvDB, "/var/tmp/env.db")

	cfg, err := Load(DefaultPath())
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp/env.db", cfg.DBPath)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvDB, "")
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{DBPath: "/data/t.db", LogFile: "-", LogLevel: "warn", ExportDir: "/exports"}

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
