// Package config loads application configuration from environment variables.
package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every tunable for the server and the client core.
type Config struct {
	Addr     string `env:"ADDR,      default=:8080"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// DBDriver selects the local store backend: "sqlite" or "postgres".
	DBDriver string `env:"DB_DRIVER, default=sqlite"`
	// DBDSN is a file path for sqlite or a connection string for postgres.
	DBDSN string `env:"DB_DSN, default=foro.db"`

	// RedisAddr enables the directory cache when set. Empty disables it.
	RedisAddr string `env:"REDIS_ADDR"`
	RedisDB   int    `env:"REDIS_DB, default=0"`
	// CacheTTL bounds the staleness of the cached user directory.
	CacheTTL time.Duration `env:"DIRECTORY_CACHE_TTL, default=5m"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Remote RemoteConfig
}

// RemoteConfig configures the client used against the remote forum backend.
type RemoteConfig struct {
	BaseURL string `env:"REMOTE_BASE_URL, default=http://localhost:8080/api"`
	// Timeout bounds each remote call end to end.
	Timeout time.Duration `env:"REMOTE_TIMEOUT, default=30s"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
