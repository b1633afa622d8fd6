package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopairs/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Report   ReportConfig
	LogLevel string
}

// DatabaseConfig holds database connection settings. An empty URL disables
// suite persistence.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// ReportConfig holds report generation settings
type ReportConfig struct {
	Locale           string
	OutputDir        string
	FileName         string
	BatchConcurrency int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: *loadDatabaseConfig(),
		Server:   *loadServerConfig(),
		Report:   *loadReportConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URL:             os.Getenv("DATABASE_URL"),
		MaxOpenConns:    getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		ConnMaxLifetime: getEnvDurationOrDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		APIPort: getEnvOrDefault("API_PORT", "8081"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadReportConfig() *ReportConfig {
	return &ReportConfig{
		Locale:           getEnvOrDefault("REPORT_LOCALE", "en"),
		OutputDir:        getEnvOrDefault("REPORT_OUTPUT_DIR", "."),
		FileName:         getEnvOrDefault("REPORT_FILE_NAME", "pairwise_comparison.xlsx"),
		BatchConcurrency: getEnvIntOrDefault("REPORT_BATCH_CONCURRENCY", 4),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if config.Report.BatchConcurrency < 1 {
		return errors.ConfigInvalid("REPORT_BATCH_CONCURRENCY must be at least 1")
	}
	if !strings.HasSuffix(strings.ToLower(config.Report.FileName), ".xlsx") {
		return errors.ConfigInvalid("REPORT_FILE_NAME must end in .xlsx")
	}
	switch strings.ToLower(config.Report.Locale) {
	case "en", "ja":
	default:
		return errors.ConfigInvalid("REPORT_LOCALE must be en or ja")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
