// Package config loads runtime configuration from the environment. A .env
// file in the working directory is honored when present.
package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config represents the flat shopfloor configuration
type Config struct {
	// DBPath overrides the default database location when non-empty.
	DBPath string
	// LogLevel is a logrus level name; unknown values fall back to info.
	LogLevel string
}

var (
	cfg  *Config
	once sync.Once
)

// Get returns the process-wide configuration, loading it on first use.
func Get() *Config {
	once.Do(func() {
		// A missing .env file is not an error; the environment wins either way.
		_ = godotenv.Load()

		cfg = &Config{
			DBPath:   os.Getenv("SHOPFLOOR_DB"),
			LogLevel: getEnv("SHOPFLOOR_LOG_LEVEL", "info"),
		}
	})
	return cfg
}

// ParseLogLevel converts the configured level name to a logrus level,
// defaulting to info.
func ParseLogLevel(name string) logrus.Level {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
