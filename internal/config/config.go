// ABOUTME: Clinic configuration management with driver selection.
// ABOUTME: Handles data and log locations and the storage factory function.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/vetclinic/internal/storage"
	"github.com/rs/zerolog"
)

// Config stores vetclinic configuration.
type Config struct {
	// Driver selects the SQLite driver: "sqlite" (pure Go, default) or "sqlite3" (cgo).
	Driver string `json:"driver,omitempty"`

	// DataDir is the root directory for data storage. clinic.db lives here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/vetclinic.
	DataDir string `json:"data_dir,omitempty"`

	// LogFile overrides the log location. Defaults to vetclinic.log in DataDir.
	LogFile string `json:"log_file,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `json:"log_level,omitempty"`
}

// GetDriver returns the configured driver, defaulting to the pure Go one.
func (c *Config) GetDriver() string {
	if c.Driver == "" {
		return storage.DriverModernc
	}
	return c.Driver
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the database file path inside the data directory.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "clinic.db")
}

// LogPath returns the log file path.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return ExpandPath(c.LogFile)
	}
	return filepath.Join(c.GetDataDir(), "vetclinic.log")
}

// GetLogLevel returns the configured level, defaulting to info.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the clinic database. A non-empty dbPath overrides the
// configured location.
func (c *Config) OpenStorage(dbPath string, logger zerolog.Logger) (*storage.DB, error) {
	if dbPath == "" {
		dbPath = c.DBPath()
	}

	switch driver := c.GetDriver(); driver {
	case storage.DriverModernc, storage.DriverMattn:
		return storage.OpenDriver(driver, ExpandPath(dbPath), logger)
	default:
		return nil, fmt.Errorf("unknown driver: %q", driver)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "vetclinic", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
