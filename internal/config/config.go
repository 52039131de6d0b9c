package config

import (
	"os"
	"strconv"

	"gofigure/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Engine   EngineConfig
	Export   ExportConfig
}

// DatabaseConfig holds database connection settings. An empty URL means no
// database: the server falls back to in-memory persistence.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// Enabled reports whether a database connection is configured
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// EngineConfig holds analysis engine settings
type EngineConfig struct {
	BatchWorkers int
}

// ExportConfig holds report and workbook export settings
type ExportConfig struct {
	Dir         string
	ReportTitle string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Engine: EngineConfig{
			BatchWorkers: getEnvIntOrDefault("BATCH_WORKERS", 4),
		},
		Export: ExportConfig{
			Dir:         getEnvOrDefault("EXPORT_DIR", "./exports"),
			ReportTitle: getEnvOrDefault("REPORT_TITLE", "Statistical Analysis Report"),
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
	if config.Engine.BatchWorkers < 1 {
		return errors.ConfigInvalid("BATCH_WORKERS must be at least 1")
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
