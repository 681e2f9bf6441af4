// Package logging builds the zerolog logger shared by the engine and CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger at the named level writing to w. Unknown levels fall
// back to info. pretty selects the human-readable console format.
func New(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Stderr is New writing to standard error.
func Stderr(level string, pretty bool) zerolog.Logger {
	return New(os.Stderr, level, pretty)
}
