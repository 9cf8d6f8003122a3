package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        string `env:"PORT"         envDefault:"8080"`
	SecretCode  string `env:"SECRET_CODE"`
	ThrowErrors bool   `env:"THROW_ERRORS" envDefault:"false"`

	// Change notifications are coalesced to at most one per interval; large
	// rounds use the wider interval.
	NotifyInterval      time.Duration `env:"NOTIFY_INTERVAL"       envDefault:"250ms"`
	NotifyIntervalLarge time.Duration `env:"NOTIFY_INTERVAL_LARGE" envDefault:"750ms"`
	LargeRoundPlayers   int           `env:"LARGE_ROUND_PLAYERS"   envDefault:"20"`
	LargeRoundPills     int           `env:"LARGE_ROUND_PILLS"     envDefault:"10000"`

	// GracePeriod is how long a timed-out round stays in GameOver before restarting.
	GracePeriod time.Duration `env:"GRACE_PERIOD" envDefault:"5s"`
	CacheTTL    time.Duration `env:"CACHE_TTL"    envDefault:"1s"`

	// MaxBoardCells caps rows*cols for a started round; zero disables the cap.
	MaxBoardCells int `env:"MAX_BOARD_CELLS" envDefault:"1000000"`
}

// LoadConfig reads the process environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns the envDefault values, ignoring the process environment.
func DefaultConfig() Config {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(err)
	}
	return cfg
}

func (c Config) notifyInterval(players, pills int) time.Duration {
	if players > c.LargeRoundPlayers || pills > c.LargeRoundPills {
		return c.NotifyIntervalLarge
	}
	return c.NotifyInterval
}
