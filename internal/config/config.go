package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/tatianab/monty-hall/internal/models"
)

// Config holds the application configuration.
type Config struct {
	Mode     models.HostMode `env:"MONTY_HOST_MODE" envDefault:"knows"`
	Strategy models.Strategy `env:"MONTY_STRATEGY" envDefault:"switch"`
	Games    int             `env:"MONTY_GAMES" envDefault:"1000"`
	// Seed 0 means a fresh random seed for every run.
	Seed      uint64 `env:"MONTY_SEED" envDefault:"0"`
	Workers   int    `env:"MONTY_WORKERS" envDefault:"1"`
	LogLevel  string `env:"MONTY_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"MONTY_LOG_FORMAT" envDefault:"text"`
	DebugLog  string `env:"MONTY_DEBUG_LOG"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when the environment is ignored.
func Default() *Config {
	return &Config{
		Mode:      models.HostKnows,
		Strategy:  models.AlwaysSwitch,
		Games:     1000,
		Workers:   1,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

func (c *Config) Validate() error {
	if c.Games < 1 {
		return fmt.Errorf("games must be at least 1, got %d", c.Games)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Level parses LogLevel into a slog level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
