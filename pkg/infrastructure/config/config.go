package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration, read from PARTCOUNTER_* environment variables
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8000"`
	MetricsAddr     string        `env:"METRICS_ADDR" envDefault:":9090"`
	DBPath          string        `env:"DB_PATH"` // empty selects the in-memory catalog
	SeedFile        string        `env:"SEED_FILE"`
	Seed            bool          `env:"SEED" envDefault:"true"`
	LogMode         string        `env:"LOG_MODE" envDefault:"development"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

const envPrefix = "PARTCOUNTER_"

// Load parses configuration from the process environment
func Load() (Config, error) {
	return parse(env.Options{Prefix: envPrefix})
}

// LoadFrom parses configuration from the given variables instead of the process environment
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Prefix: envPrefix, Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.HTTPAddr == "" {
		return Config{}, fmt.Errorf("HTTP address cannot be empty")
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("shutdown timeout must be positive, got %s", cfg.ShutdownTimeout)
	}
	return cfg, nil
}
