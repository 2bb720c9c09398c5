package config

import (
	"os"
	"strconv"

	"insightlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Ingest     IngestConfig
	Validation ValidationConfig
	Ops        OpsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds the optional report archive connection settings.
// An empty URL disables the archive; reports are then served from memory only.
type DatabaseConfig struct {
	URL string
}

// IngestConfig holds file ingestion limits
type IngestConfig struct {
	MaxRows       int
	MaxUploadSize int64
}

// ValidationConfig holds the default rule thresholds. Per-request overrides
// are applied on top of these.
type ValidationConfig struct {
	MissingnessThreshold      float64
	MissingnessErrorThreshold float64
	OutlierIQRMultiplier      float64
}

// OpsConfig holds the operational sidecar server settings
type OpsConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Ingest: IngestConfig{
			MaxRows:       getEnvIntOrDefault("INGEST_MAX_ROWS", 100000),
			MaxUploadSize: int64(getEnvIntOrDefault("INGEST_MAX_UPLOAD_BYTES", 32<<20)),
		},
		Validation: ValidationConfig{
			MissingnessThreshold:      getEnvFloatOrDefault("MISSINGNESS_THRESHOLD", 0.5),
			MissingnessErrorThreshold: getEnvFloatOrDefault("MISSINGNESS_ERROR_THRESHOLD", 0.9),
			OutlierIQRMultiplier:      getEnvFloatOrDefault("OUTLIER_IQR_MULTIPLIER", 1.5),
		},
		Ops: OpsConfig{
			Port:    getEnvOrDefault("OPS_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("OPS_ENABLED", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Ingest.MaxRows < 1 {
		return errors.ConfigInvalid("INGEST_MAX_ROWS must be positive")
	}
	if config.Validation.MissingnessThreshold < 0 || config.Validation.MissingnessThreshold > 1 {
		return errors.ConfigInvalid("MISSINGNESS_THRESHOLD must be in [0,1]")
	}
	if config.Validation.MissingnessErrorThreshold < 0 || config.Validation.MissingnessErrorThreshold > 1 {
		return errors.ConfigInvalid("MISSINGNESS_ERROR_THRESHOLD must be in [0,1]")
	}
	if config.Validation.OutlierIQRMultiplier < 0 {
		return errors.ConfigInvalid("OUTLIER_IQR_MULTIPLIER must be non-negative")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
