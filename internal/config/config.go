// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server's environment-driven settings
type Config struct {
	Host string `env:"FDRAFT_HOST"`
	Port int    `env:"FDRAFT_PORT" envDefault:"8080"`

	StorageType string `env:"FDRAFT_STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"FDRAFT_REDIS_URL"`

	TokenSecret   string        `env:"FDRAFT_TOKEN_SECRET"`
	TokenDuration time.Duration `env:"FDRAFT_TOKEN_DURATION" envDefault:"24h"`

	AllowedOrigins []string `env:"FDRAFT_ALLOWED_ORIGINS" envSeparator:","`
	GameLimit      int      `env:"FDRAFT_GAME_LIMIT" envDefault:"2"`
	CatalogPath    string   `env:"FDRAFT_CATALOG_PATH"`
	StaticDir      string   `env:"FDRAFT_STATIC_DIR"`
}

// Load parses configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
