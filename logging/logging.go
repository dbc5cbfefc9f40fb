// Package logging sets up the debug log. The terminal belongs to the UI, so
// log output always goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var logFile = "blup-chess/debug.log"

// New opens (or creates) the log file at path and returns a logger writing to
// it. An empty path selects the XDG state directory. The returned closer
// closes the file.
func New(path, level string) (zerolog.Logger, io.Closer, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(level)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("log level: %w", err)
		}
	}

	if path == "" {
		var err error
		path, err = xdg.StateFile(logFile)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("log path: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return logger, f, nil
}
