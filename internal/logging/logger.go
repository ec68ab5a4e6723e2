// Package logging builds the process-wide structured logger.
// It combines console output with optional size-rotated log files.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the logging configuration
type Config struct {
	Level      slog.Level
	FilePath   string // Empty disables file output
	MaxSizeMB  int64  // Rotation threshold per log file
	MaxBackups int    // Rotated files kept before the oldest is dropped
	Console    bool
}

// DefaultConfig returns the default logging configuration
func DefaultConfig() *Config {
	return &Config{
		Level:      slog.LevelInfo,
		FilePath:   "",
		MaxSizeMB:  100,
		MaxBackups: 5,
		Console:    true,
	}
}

// ParseLevel converts a string log level to slog.Level
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a JSON logger writing to the configured outputs.
func NewLogger(config Config) (*slog.Logger, error) {
	writer, err := buildWriter(config)
	if err != nil {
		return nil, err
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: config.Level,
	})

	return slog.New(handler), nil
}

// SetDefault creates and installs the process default logger.
func SetDefault(config Config) error {
	logger, err := NewLogger(config)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

// buildWriter assembles the output writer: console, rotated file, or
// both. With nothing configured it falls back to stdout.
func buildWriter(config Config) (io.Writer, error) {
	var writers []io.Writer

	if config.Console {
		writers = append(writers, os.Stdout)
	}

	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, err
		}

		fileWriter, err := NewRotatingFileWriter(
			config.FilePath,
			config.MaxSizeMB*1024*1024,
			config.MaxBackups,
		)
		if err != nil {
			return nil, err
		}
		writers = append(writers, fileWriter)
	}

	switch len(writers) {
	case 0:
		return os.Stdout, nil
	case 1:
		return writers[0], nil
	default:
		return io.MultiWriter(writers...), nil
	}
}
