// Package config loads the settings of the tdmk binaries from the
// environment.
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	HTTP        struct {
		Port            int           `env:"HTTP_PORT" envDefault:"8080"`
		ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
		WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
		IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
		RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"60s"`
		ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	}
	Logging struct {
		Level  string `env:"LOG_LEVEL" envDefault:"info"`
		Format string `env:"LOG_FORMAT" envDefault:"json"`
		Output string `env:"LOG_OUTPUT" envDefault:"stderr"`
	}
	Landscape struct {
		// MaxK caps the clique size the HTTP service accepts; each
		// clique's fitness table holds 2^K entries.
		MaxK int `env:"LANDSCAPE_MAX_K" envDefault:"20"`
		// MaxM caps the clique count the HTTP service accepts.
		MaxM int `env:"LANDSCAPE_MAX_M" envDefault:"1024"`
	}
	Generator struct {
		Instances int   `env:"GEN_INSTANCES" envDefault:"25"`
		Seed      int64 `env:"GEN_SEED" envDefault:"0"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}

	// Parse environment variables
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Development runs default to debug logging unless LOG_LEVEL is set
	// explicitly.
	if cfg.Environment == "development" {
		if _, set := os.LookupEnv("LOG_LEVEL"); !set {
			cfg.Logging.Level = "debug"
		}
	}

	return cfg, nil
}
