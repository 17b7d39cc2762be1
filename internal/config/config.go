package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Config is everything tunable from the environment, prefixed with
// DOCSUNEED_. The data dir defaults to ~/.docsuneed when unset.
type Config struct {
	DataDir       string `envconfig:"DATA_DIR" validate:"required"`
	Theme         string `envconfig:"THEME" default:"classic"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	Debug         bool   `envconfig:"DEBUG"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("docsuneed", &c); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("home: %w", err)
		}
		c.DataDir = filepath.Join(home, ".docsuneed")
	}
	if err := validator.New().Struct(c); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &c, nil
}

// NewLogger builds the diagnostics logger. Quiet by default; DEBUG=1
// opens it up. Diagnostics go to stderr so panels and the TUI own stdout.
func NewLogger(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
