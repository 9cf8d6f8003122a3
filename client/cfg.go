package client

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
)

type Config struct {
	Server string `env:"SERVER" envDefault:"http://localhost:8080"`
	Name   string `env:"NAME"`

	// ErrorBackoff is how long the bot waits after a failed request.
	ErrorBackoff   time.Duration `env:"ERROR_BACKOFF"   envDefault:"2s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Name == "" {
		cfg.Name = "bot-" + uuid.NewString()[:8]
	}
	return cfg, nil
}
