// Package config handles the on-disk application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Config represents the application configuration
type Config struct {
	// Selector is the CSS selector exported rule blocks are written
	// under.
	Selector string `json:"selector"`
	// DefaultMinContrast is the contrast ratio used by requirements
	// that do not specify one.
	DefaultMinContrast float64 `json:"default_min_contrast"`
	// UpdateWindow is the sink notification coalescing window.
	UpdateWindow time.Duration `json:"update_window"`
	// DefaultTheme is applied at startup when no theme is named.
	DefaultTheme string `json:"default_theme"`
	// BakeIndirect exports computed colors instead of expressions for
	// every indirect variable.
	BakeIndirect bool `json:"bake_indirect"`

	LogLevel string `json:"log_level"`
}

// Manager handles configuration storage and retrieval
type Manager struct {
	configDir  string
	configFile string
	logger     *log.Logger
}

// NewManager creates a Manager over the default configuration
// directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	return NewManagerAt(configDir), nil
}

// NewManagerAt creates a Manager over an explicit directory. Tests use
// this to stay out of the user's home.
func NewManagerAt(dir string) *Manager {
	return &Manager{
		configDir:  dir,
		configFile: filepath.Join(dir, "config.json"),
		logger:     log.New(os.Stderr),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".huegraph")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// Load reads the configuration, creating a default one on first run.
func (m *Manager) Load() (*Config, error) {
	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		config := Default()
		if err := m.Save(config); err != nil {
			m.logger.Warn("Failed to save default config", "error", err)
		}
		return config, nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

// Save writes the configuration to disk.
func (m *Manager) Save(config *Config) error {
	if err := os.MkdirAll(m.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Selector:           ":root",
		DefaultMinContrast: 4.5,
		UpdateWindow:       20 * time.Millisecond,
		LogLevel:           "info",
	}
}

// applyDefaults ensures all config fields have default values
func applyDefaults(config *Config) {
	if config.Selector == "" {
		config.Selector = ":root"
	}
	if config.DefaultMinContrast == 0 {
		config.DefaultMinContrast = 4.5
	}
	if config.UpdateWindow == 0 {
		config.UpdateWindow = 20 * time.Millisecond
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// Validate validates the configuration
func (m *Manager) Validate(config *Config) error {
	if config.Selector == "" {
		return fmt.Errorf("selector cannot be empty")
	}
	if config.DefaultMinContrast < 1 || config.DefaultMinContrast > 21 {
		return fmt.Errorf("default min contrast must be between 1 and 21")
	}
	if config.UpdateWindow < 0 {
		return fmt.Errorf("update window cannot be negative")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	for _, level := range validLogLevels {
		if config.LogLevel == level {
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s", config.LogLevel)
}
