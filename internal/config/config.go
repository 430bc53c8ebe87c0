package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/wordflash/wordflash/internal/srs"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	ImportWorkerCount int
	ImportQueueSize   int

	// Scheduler tunables. Defaults match the standard SM-2 constants.
	SRSInitialEase     float64
	SRSMinEase         float64
	SRSMaxEase         float64
	SRSInitialInterval int
	SRSMaxInterval     int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	defaults := srs.DefaultParams()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:wordflash.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		ImportWorkerCount: envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:   envIntOr("IMPORT_QUEUE_SIZE", 32),

		SRSInitialEase:     envFloatOr("SRS_INITIAL_EASE", defaults.InitialEase),
		SRSMinEase:         envFloatOr("SRS_MIN_EASE", defaults.MinEase),
		SRSMaxEase:         envFloatOr("SRS_MAX_EASE", defaults.MaxEase),
		SRSInitialInterval: envIntOr("SRS_INITIAL_INTERVAL", defaults.InitialInterval),
		SRSMaxInterval:     envIntOr("SRS_MAX_INTERVAL", defaults.MaxInterval),
	}
}

// SRSParams builds the scheduler parameter set from the loaded config.
func (c Config) SRSParams() srs.Params {
	return srs.Params{
		InitialEase:     c.SRSInitialEase,
		MinEase:         c.SRSMinEase,
		MaxEase:         c.SRSMaxEase,
		InitialInterval: c.SRSInitialInterval,
		MaxInterval:     c.SRSMaxInterval,
	}
}

// Validate checks the configuration and returns a single error listing
// every problem found.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.ImportWorkerCount <= 0 {
		problems = append(problems, "IMPORT_WORKER_COUNT must be positive")
	}
	if c.ImportQueueSize <= 0 {
		problems = append(problems, "IMPORT_QUEUE_SIZE must be positive")
	}
	if c.SRSMinEase <= 0 {
		problems = append(problems, "SRS_MIN_EASE must be positive")
	}
	if c.SRSMinEase > c.SRSMaxEase {
		problems = append(problems, "SRS_MIN_EASE cannot exceed SRS_MAX_EASE")
	}
	if c.SRSInitialEase < c.SRSMinEase || c.SRSInitialEase > c.SRSMaxEase {
		problems = append(problems, "SRS_INITIAL_EASE must be within [SRS_MIN_EASE, SRS_MAX_EASE]")
	}
	if c.SRSInitialInterval < 1 {
		problems = append(problems, "SRS_INITIAL_INTERVAL must be at least 1")
	}
	if c.SRSMaxInterval < c.SRSInitialInterval {
		problems = append(problems, "SRS_MAX_INTERVAL cannot be less than SRS_INITIAL_INTERVAL")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
