package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// EnvDB overrides the database path from the config file.
const EnvDB = "TICKLIST_DB"

// Config represents the application configuration
type Config struct {
	DBPath    string `yaml:"db_path" json:"db_path"`
	LogFile   string `yaml:"log_file" json:"log_file"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
	ExportDir string `yaml:"export_dir" json:"export_dir"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the YAML file at path. A missing file yields the defaults;
// blank fields in an existing file are filled from the defaults too.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the config to path, replacing any previous file atomically.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}

func (c *Config) applyDefaults() {
	dir := appDir()
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, "ticklist.db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dir, "logs", "ticklist.log")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ExportDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.ExportDir = home
		} else {
			c.ExportDir = "."
		}
	}
}

// DefaultPath returns the config file location, preferring XDG_CONFIG_HOME.
func DefaultPath() string {
	return filepath.Join(appDir(), "config.yaml")
}

func appDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "ticklist")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "ticklist")
	}
	return ".ticklist"
}
