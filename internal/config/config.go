package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when neither the environment nor flags set a value.
const (
	DefaultAPIURI   = "https://disease.sh"
	DefaultInterval = 60 * time.Second
	DefaultLastDays = 120
	DefaultLogLevel = "info"
)

// AppConfig holds the settings read from the environment. Command-line flags
// are layered on top by cmd/ctrack.
type AppConfig struct {
	APIURI   string
	Interval time.Duration
	LastDays int
	LogFile  string
	LogLevel string
}

// Load reads configuration from a .env file (if present) and the environment,
// with defaults for anything unset.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		APIURI:   getenvDefault("CTRACK_API_URI", DefaultAPIURI),
		LogFile:  os.Getenv("CTRACK_LOG_FILE"),
		LogLevel: getenvDefault("CTRACK_LOG_LEVEL", DefaultLogLevel),
	}

	interval, err := time.ParseDuration(getenvDefault("CTRACK_INTERVAL", DefaultInterval.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid CTRACK_INTERVAL: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("invalid CTRACK_INTERVAL: must be positive")
	}
	cfg.Interval = interval

	lastDays, err := getenvInt("CTRACK_LAST_DAYS", DefaultLastDays)
	if err != nil {
		return nil, fmt.Errorf("invalid CTRACK_LAST_DAYS: %w", err)
	}
	cfg.LastDays = lastDays

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
