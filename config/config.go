// Package config loads the fort configuration from a TOML file in the
// XDG config directory. A missing file yields the defaults; flags may
// override individual values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all fort configuration.
type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Ledger   LedgerConfig   `toml:"ledger"`
	Reminder ReminderConfig `toml:"reminder"`
	Export   ExportConfig   `toml:"export"`
}

// StorageConfig holds durable store settings.
type StorageConfig struct {
	// Dir is where the database and fallback file live. Empty means the
	// XDG data directory.
	Dir string `toml:"dir,omitempty"`
	// FallbackLimitBytes caps the document size on the fallback backend.
	FallbackLimitBytes int64 `toml:"fallback_limit_bytes,omitempty"`
}

// LedgerConfig holds ledger-wide settings.
type LedgerConfig struct {
	// Currency is the ISO 4217 code used for all amounts.
	Currency string `toml:"currency"`
}

// ReminderConfig holds the reminder daemon settings.
type ReminderConfig struct {
	// Schedule is a cron expression for the periodic due-milestone check.
	Schedule string `toml:"schedule"`
}

// ExportConfig holds backup snapshot settings.
type ExportConfig struct {
	// Dir is where snapshots are written. Empty means the current directory.
	Dir string `toml:"dir,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Ledger:   LedgerConfig{Currency: "INR"},
		Reminder: ReminderConfig{Schedule: "@every 1m"},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fort")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fort")
}

// DataDir returns the XDG-compliant data directory, the default storage
// location.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "fort")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "fort")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path (Path() when empty). A missing file is
// not an error: defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("could not read config %q: %w", path, err)
	}
	if cfg.Ledger.Currency == "" {
		cfg.Ledger.Currency = Default().Ledger.Currency
	}
	return cfg, nil
}

// Save writes the config to path (Path() when empty), creating the directory
// if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not write config %q: %w", path, err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
