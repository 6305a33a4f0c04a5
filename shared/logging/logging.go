// Package logging builds the diagnostic logger written to stderr.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger on w. Verbose mode logs at info level;
// otherwise only warnings and errors are shown.
func New(w io.Writer, verbose, color bool) zerolog.Logger {
	lvl := zerolog.WarnLevel
	if verbose {
		lvl = zerolog.InfoLevel
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !color,
	}

	return zerolog.New(consoleWriter).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
