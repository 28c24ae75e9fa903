package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// Logger returns the package logger.
func Logger() zerolog.Logger {
	return logger
}

// ConfigureLogger applies the configured level and quiet switch to the
// package logger and returns the result.
func ConfigureLogger(cfg Config) zerolog.Logger {
	if cfg.Quiet {
		logger = zerolog.New(io.Discard)
		return logger
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)
	return logger
}
