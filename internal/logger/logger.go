// Package logger builds the zerolog file logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// Config selects the log level and the rolling file.
type Config struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing JSON lines to a rolling file.
// The TUI owns stdout and stderr, so logs never go to the terminal.
// An empty path or the "disabled" level yields a no-op logger.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	levelName := cfg.Level
	if levelName == "" {
		levelName = DefaultLevel
	}
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("log level %q is not supported: %w", levelName, err)
	}
	if level == zerolog.Disabled || cfg.Path == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    orDefault(cfg.MaxSizeMB, 5),
		MaxBackups: orDefault(cfg.MaxBackups, 3),
		MaxAge:     orDefault(cfg.MaxAgeDays, 28),
		LocalTime:  false,
		Compress:   false,
	}
	log := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return log, w, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
