package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"

	"github.com/dmitrijs2005/biteboxd/internal/flagx"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "BITEBOXD_"

// Config holds runtime settings for the BiteBoxd CLI.
//
// RequestTimeout bounds each backend call; zero means no timeout.
type Config struct {
	ServerBaseURL  string        `env:"SERVER_URL, overwrite" validate:"required,http_url"`
	DatabasePath   string        `env:"DB_PATH, overwrite" validate:"required"`
	LogLevel       string        `env:"LOG_LEVEL, overwrite" validate:"oneof=debug info warn error"`
	LogFormat      string        `env:"LOG_FORMAT, overwrite" validate:"oneof=text json"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, overwrite" validate:"gte=0"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.DatabasePath = "biteboxd.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.RequestTimeout = 0
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then BITEBOXD_* environment variables, then flags. Later
// sources take precedence over earlier ones.
func LoadConfig(ctx context.Context) (*Config, error) {
	return load(ctx, os.Args[1:], envconfig.OsLookuper())
}

func load(ctx context.Context, args []string, env envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, flagx.ConfigFileFlag(args)); err != nil {
		return nil, err
	}
	if err := parseEnv(ctx, cfg, env); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseEnv(ctx context.Context, cfg *Config, env envconfig.Lookuper) error {
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, env),
	})
	if err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
