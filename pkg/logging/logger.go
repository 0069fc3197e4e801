// Package logging configures acgen's zerolog loggers and carries them
// through context.Context.
//
//	ctx := logging.WithLogger(context.Background(), logger)
//	ctx = logging.WithShell(ctx, "zsh")
//	logging.FromContext(ctx).Info().Msg("Wrote completion")
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger = zerolog.New(formatWriter(os.Stderr, os.Getenv("LOG_FORMAT"), os.Getenv("NO_COLOR") != "")).
	Level(parseLevel(os.Getenv("LOG_LEVEL"))).
	With().
	Timestamp().
	Logger()

// Default returns the logger FromContext falls back to.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default logger and zerolog's global log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// NewActivityLogger returns a JSON logger for append-only activity files.
// Write entries with Log() so they are kept whatever the global level is.
func NewActivityLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
