// SPDX-License-Identifier: MIT

// Package logging configures the process-wide zerolog logger used by the
// backend adapter, factored matrices and the command line.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration.
type Config struct {
	Level  string    // debug, info, warn, error, disabled
	Pretty bool      // human-readable console output
	Out    io.Writer // defaults to os.Stderr
}

// DefaultConfig logs warnings and above as JSON to stderr.
func DefaultConfig() Config {
	return Config{Level: "warn"}
}

// New builds a logger from cfg and installs it as the global log.Logger.
// An unknown level falls back to warn.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.WarnLevel
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}
