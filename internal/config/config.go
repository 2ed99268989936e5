// Package config handles foodfire configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/foodfireroad/foodfire/internal/core"
	"github.com/foodfireroad/foodfire/internal/storage"
	"github.com/foodfireroad/foodfire/internal/streaks"
)

// FileName is the config file looked up in the data directory
const FileName = "config.json"

// Config holds all configuration
type Config struct {
	// Paths
	DataDir string `json:"data_dir" env:"FOODFIRE_DATA_DIR"`

	Storage StorageConfig `json:"storage"`
	Logging LoggingConfig `json:"logging"`
	Streaks StreaksConfig `json:"streaks"`
}

// StorageConfig selects the document backend
type StorageConfig struct {
	Backend      string `json:"backend" env:"FOODFIRE_STORAGE_BACKEND"`
	DocumentFile string `json:"document_file"`
	DatabaseFile string `json:"database_file"`
}

// LoggingConfig for the process logger
type LoggingConfig struct {
	Level string `json:"level" env:"FOODFIRE_LOG_LEVEL"`
}

// StreaksConfig for streak evaluation
type StreaksConfig struct {
	Rule string `json:"rule" env:"FOODFIRE_STREAK_RULE"`
}

// Default returns default configuration
func Default() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		DataDir: filepath.Join(home, ".foodfire"),
		Storage: StorageConfig{
			Backend:      storage.BackendFile,
			DocumentFile: storage.DocumentFileName,
			DatabaseFile: storage.DatabaseFileName,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Streaks: StreaksConfig{
			Rule: streaks.AtOrBelowGoal.String(),
		},
	}
}

// ParseEnv overlays environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load loads config from file, falling back to defaults. An empty path means
// config.json in the data directory. Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := Default()

	// First pass so FOODFIRE_DATA_DIR can locate the file
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	if path == "" {
		path = filepath.Join(cfg.DataDir, FileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Use defaults
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := ParseEnv(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting has a usable value.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir", core.ErrMissingRequired)
	}
	switch c.Storage.Backend {
	case storage.BackendFile, storage.BackendSQLite:
	default:
		return fmt.Errorf("%w: %q", core.ErrUnknownBackend, c.Storage.Backend)
	}
	if c.Storage.DocumentFile == "" {
		return fmt.Errorf("%w: storage.document_file", core.ErrMissingRequired)
	}
	if c.Storage.DatabaseFile == "" {
		return fmt.Errorf("%w: storage.database_file", core.ErrMissingRequired)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: log level %q", core.ErrInvalidInput, c.Logging.Level)
	}
	if _, err := streaks.ParseRule(c.Streaks.Rule); err != nil {
		return err
	}
	return nil
}

// Rule returns the configured streak rule. Validate has already rejected
// unknown names, so they fall back to AtOrBelowGoal here.
func (c *Config) Rule() streaks.Rule {
	r, err := streaks.ParseRule(c.Streaks.Rule)
	if err != nil {
		return streaks.AtOrBelowGoal
	}
	return r
}

// DocumentPath is where the file backend keeps the document
func (c *Config) DocumentPath() string {
	return resolve(c.DataDir, c.Storage.DocumentFile)
}

// DatabasePath is where the sqlite backend keeps its database
func (c *Config) DatabasePath() string {
	return resolve(c.DataDir, c.Storage.DatabaseFile)
}

// StoreOptions returns the storage options for this configuration
func (c *Config) StoreOptions() storage.Options {
	return storage.Options{
		Backend:      c.Storage.Backend,
		DocumentPath: c.DocumentPath(),
		DatabasePath: c.DatabasePath(),
	}
}

func resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// Save saves config to file
func (c *Config) Save(path string) error {
	if path == "" {
		path = filepath.Join(c.DataDir, FileName)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
