// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging constructs the engine's zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a logger writing to stderr at the given level. An empty level
// means "info". When console is true, output is human-formatted instead of
// JSON.
func New(level string, console bool) (zerolog.Logger, error) {
	if level == "" {
		level = "info"
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", level, err)
	}

	var writer io.Writer = os.Stderr
	if console {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(writer).
		Level(parsed).
		With().
		Timestamp().
		Str("service", "meeting-notes-engine").
		Logger()

	return logger, nil
}

// Nop returns a disabled logger for components whose caller does not care
// about diagnostics (tests, library use).
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
