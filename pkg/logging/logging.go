// Package logging constructs the application's zerolog logger.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a configured logger. Format "console" writes
// human-readable output; anything else writes JSON. An unknown level
// falls back to info.
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(lvl).With().Timestamp().Logger()
}
