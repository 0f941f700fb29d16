// Package config loads server configuration from the environment.
// All variables carry the HOMEGAME_ prefix.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is the envconfig prefix for all variables.
	EnvPrefix = "HOMEGAME"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Config is the full server configuration.
type Config struct {
	App AppConfig
	DB  DBConfig
	JWT JWTConfig
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// AppConfig holds process-level settings.
type AppConfig struct {
	Env      string `envconfig:"HOMEGAME_APP_ENV" default:"dev"`
	Port     string `envconfig:"HOMEGAME_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"HOMEGAME_LOG_LEVEL" default:"info"`
}

// IsDev reports whether the app runs in the dev environment.
func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

// IsProd reports whether the app runs in the prod environment.
func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig holds the SQLite database settings.
type DBConfig struct {
	Path string `envconfig:"HOMEGAME_DB_PATH" default:"data/homegame.db"`
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret        string        `envconfig:"HOMEGAME_JWT_SECRET" required:"true"`
	TokenDuration time.Duration `envconfig:"HOMEGAME_JWT_TOKEN_DURATION" default:"24h"`
}
