package config

import (
	"os"
	"strconv"

	"doseview/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
	UI     UIConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds data loading settings
type DataConfig struct {
	// DataFile is the screening CSV/XLSX to load. Empty means the server
	// starts on generated sample data only.
	DataFile string
	// SampleSeed drives sample-data generation for reproducible demos
	SampleSeed int64
}

// UIConfig holds presentation settings
type UIConfig struct {
	// Theme selects the stylesheet: "light", "dark" or "classic"
	Theme    string
	PageSize int
}

// Valid themes
var knownThemes = map[string]bool{
	"light":   true,
	"dark":    true,
	"classic": true,
}

// Modes gin.SetMode accepts; anything else makes it panic
var knownGinModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Data: DataConfig{
			DataFile:   getEnvOrDefault("DATA_FILE", ""),
			SampleSeed: int64(getEnvIntOrDefault("SAMPLE_SEED", 42)),
		},
		UI: UIConfig{
			Theme:    getEnvOrDefault("THEME", "light"),
			PageSize: getEnvIntOrDefault("PAGE_SIZE", 25),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if !knownGinModes[config.Server.GinMode] {
		return errors.ConfigInvalid("unknown gin mode: " + config.Server.GinMode)
	}
	if !knownThemes[config.UI.Theme] {
		return errors.ConfigInvalid("unknown theme: " + config.UI.Theme)
	}
	if config.UI.PageSize <= 0 {
		return errors.ConfigInvalid("page size must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
