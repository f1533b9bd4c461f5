// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"genshinbook/internal/config"
)

// Setup points the standard logrus logger at the configured log file.
// The TUI owns stdout, so log lines never go to the terminal.
// The returned closer must be called on shutdown.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	if cfg.File == "" {
		log.SetOutput(io.Discard)
		return nopCloser{}, nil
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("could not open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// SetupStderr is used by non-interactive commands
func SetupStderr(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
