package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/existflow/daybook/internal/calendar"
	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	DataDir       string `yaml:"data_dir" json:"data_dir"`             // Directory holding the database and attachments
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for delete
	WeekStart     string `yaml:"week_start" json:"week_start"`         // monday or sunday

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging

	path string
}

// DefaultDir returns ~/.daybook
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	if home == "" {
		return ".daybook"
	}
	return filepath.Join(home, ".daybook")
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir := getEnv("DAYBOOK_DATA_DIR", DefaultDir())

	return &Config{
		DataDir:       dir,
		ConfirmDelete: true,
		WeekStart:     getEnv("DAYBOOK_WEEK_START", string(calendar.Monday)),
		LogLevel:      getEnv("DAYBOOK_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("DAYBOOK_LOG_FILE", filepath.Join(dir, "logs", "daybook.log")),
		LogConsole:    getEnv("DAYBOOK_LOG_CONSOLE", "false") == "true",
		path:          DefaultPath(),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.daybook/config.yaml
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads config from path, returning defaults if it doesn't exist
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the config back to the file it was loaded from
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DatabasePath is the SQLite file inside DataDir
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "daybook.sqlite")
}

// AttachmentsDir is where note images are stored
func (c *Config) AttachmentsDir() string {
	return filepath.Join(c.DataDir, "images")
}

// Week returns the configured first day of the week
func (c *Config) Week() calendar.WeekStart {
	return calendar.ParseWeekStart(c.WeekStart)
}
