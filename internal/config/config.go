// Package config loads server configuration from environment variables.
//
// WHY A CONFIG LIBRARY?
// Reading env vars by hand means repeating the same "getenv, check empty,
// parse, default" dance for every option. caarlos0/env does all of that from
// struct tags: the field type drives the parsing, envDefault supplies the
// fallback, and the whole configuration is documented in one struct.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	Port     int  `env:"PORT" envDefault:"8080"`
	LogLevel int  `env:"LOG_LEVEL" envDefault:"0"` // slog levels: -4 debug, 0 info, 4 warn, 8 error
	Seed     Seed `envPrefix:"SEED_"`
}

// Seed contains startup-bootstrap parameters.
//
// The directory seeds itself once at startup from a randomuser.me-compatible
// endpoint. Seeding is best-effort: failures leave the store empty and the
// server running, so none of these settings can prevent startup.
type Seed struct {
	URL      string `env:"URL" envDefault:"https://randomuser.me/api/"`
	Count    int    `env:"COUNT" envDefault:"50"`
	Disabled bool   `env:"DISABLED" envDefault:"false"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
