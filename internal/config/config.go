// Package config loads process-wide settings from the environment
// (optionally via a .env file), in the teacher's getEnvXOrDefault
// style.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings that govern a planning run but are not
// part of the data directory itself (spec §5).
type Config struct {
	SolverTimeout time.Duration
	DefaultSeed   int64
	LogLevel      string
	LogFormat     string
}

// Load reads a .env file if present (ignored if absent) and returns a
// validated Config built from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SolverTimeout: getEnvAsDurationOrDefault("MEALPLANNER_SOLVER_TIMEOUT", 10*time.Second),
		DefaultSeed:   getEnvAsInt64OrDefault("MEALPLANNER_DEFAULT_SEED", 42),
		LogLevel:      getEnvOrDefault("MEALPLANNER_LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("MEALPLANNER_LOG_FORMAT", "console"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.SolverTimeout <= 0 {
		return errors.New("solver timeout must be positive")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return errors.New("log format must be console or json")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
