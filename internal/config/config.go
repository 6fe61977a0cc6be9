package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the application configuration
type Config struct {
	Database   string `toml:"database"`
	TablesFile string `toml:"tables_file,omitempty"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDefaultDatabasePath returns the path of the card database
func GetDefaultDatabasePath() string {
	return filepath.Join(GetXDGDataHome(), "librarian", "cards.db")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "librarian", "config.toml")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database:  GetDefaultDatabasePath(),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadConfig loads the config file at path, or the default config file when
// path is empty. A missing default config file is created.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = GetConfigFilePath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return createDefaultConfig(path)
		}
	}

	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) (*Config, error) {
	config := Default()
	if err := writeConfig(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

func writeConfig(path string, config *Config) error {
	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// Init writes the default config file unless one exists. It returns the path.
func Init(path string, force bool) (string, error) {
	if path == "" {
		path = GetConfigFilePath()
	}
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("config file already exists: %s", path)
	}
	return path, writeConfig(path, Default())
}

// SetDatabase sets the default database in the config
func SetDatabase(path, database string) error {
	config, err := LoadConfig(path)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(database)
	if err != nil {
		return fmt.Errorf("error resolving database path: %w", err)
	}
	config.Database = abs

	if path == "" {
		path = GetConfigFilePath()
	}
	return writeConfig(path, config)
}

// EnsureDatabaseDir creates the directory holding the database file.
func EnsureDatabaseDir(database string) error {
	if database == "" || database == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(database), 0755); err != nil {
		return fmt.Errorf("error creating database directory: %w", err)
	}
	return nil
}
