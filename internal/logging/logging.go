// Package logging builds the zerolog loggers used across cvbridge.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Config selects the log level and output format.
type Config struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string

	// Format is json or console. Unknown values mean json.
	Format string
}

// New returns a timestamped logger writing to w.
func New(w io.Writer, cfg Config) zerolog.Logger {
	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Component returns a child logger tagged with a component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
