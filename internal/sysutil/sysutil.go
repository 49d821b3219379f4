// Package sysutil configures the process-wide zerolog logger.
package sysutil

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetLogLevel sets the global zerolog level from a name such as "debug" or
// "warn" ("warning" is accepted too). Blank or unknown names mean info.
func SetLogLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	return lvl
}

// NewLogger builds the process logger writing to w (stderr when nil).
// Pretty selects the human-readable console writer.
func NewLogger(w io.Writer, pretty bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).With().Timestamp().Str("service", "warri-apartment-hunt").Logger()
}

// SetupLogging sets the global level and replaces the global logger.
func SetupLogging(level string, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	lvl := SetLogLevel(level)
	log.Logger = NewLogger(nil, pretty)
	log.Debug().Stringer("level", lvl).Msg("logging configured")
}
