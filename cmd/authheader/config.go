package main

import (
	"log/slog"

	"braces.dev/errtrace"
	"github.com/caarlos0/env/v11"
)

const envPrefix = "AUTHHEADER_"

// config is loaded from AUTHHEADER_* environment variables. Flags take precedence.
type config struct {
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"console"`
	Legacy    bool       `env:"LEGACY"`
}

func loadConfig(environ map[string]string) (config, error) {
	var cfg config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      envPrefix,
		Environment: environ,
	}); err != nil {
		return config{}, errtrace.Wrap(err)
	}
	return cfg, nil
}
