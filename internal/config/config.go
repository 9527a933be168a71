package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr      string `env:"FARTHING_ADDR" envDefault:":8080"`
	DBPath    string `env:"FARTHING_DB_PATH" envDefault:"farthing.db"`
	LogLevel  string `env:"FARTHING_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"FARTHING_LOG_FORMAT" envDefault:"text"`

	// TickInterval is how often the payday scheduler checks the clock. The
	// matching resolution is one minute; ticking faster than that only
	// tightens jitter.
	TickInterval time.Duration `env:"FARTHING_TICK_INTERVAL" envDefault:"1m"`
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
