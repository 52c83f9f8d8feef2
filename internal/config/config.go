package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds server settings
type Config struct {
	Port            string `yaml:"port" json:"port"`                           // HTTP listen port
	DataDir         string `yaml:"data_dir" json:"data_dir"`                   // Directory holding the sqlite store files
	CommonPasswords string `yaml:"common_passwords" json:"common_passwords"`   // Path to the common-password list

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dataDir := ""
	logPath := ""
	if home != "" {
		dataDir = filepath.Join(home, ".minder", "databases")
		logPath = filepath.Join(home, ".minder", "logs", "minder.log")
	}

	return &Config{
		Port:            getEnv("MINDER_PORT", "8080"),
		DataDir:         getEnv("MINDER_DATA_DIR", dataDir),
		CommonPasswords: getEnv("MINDER_COMMON_PASSWORDS", ""),
		LogLevel:        getEnv("MINDER_LOG_LEVEL", "INFO"),
		LogFile:         getEnv("MINDER_LOG_FILE", logPath),
		LogConsole:      getEnv("MINDER_LOG_CONSOLE", "true") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.minder/config.yaml
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".minder", "config.yaml")

	// Return defaults if no config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.minder/config.yaml
func (c *Config) Save() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".minder")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
