package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug},
		{"info level", "info", slog.LevelInfo},
		{"warn level", "warn", slog.LevelWarn},
		{"warning level", "warning", slog.LevelWarn},
		{"error level", "error", slog.LevelError},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"invalid level defaults to info", "invalid", slog.LevelInfo},
		{"empty string defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != slog.LevelInfo {
		t.Errorf("Default level = %v, want %v", cfg.Level, slog.LevelInfo)
	}
	if cfg.FilePath != "" {
		t.Errorf("Default FilePath = %q, want empty", cfg.FilePath)
	}
	if !cfg.Console {
		t.Error("Default Console = false, want true")
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("console only", func(t *testing.T) {
		logger, err := NewLogger(Config{Level: slog.LevelInfo, Console: true})
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		if logger == nil {
			t.Fatal("NewLogger returned nil logger")
		}
	})

	t.Run("file output creates the log file", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "test.log")

		logger, err := NewLogger(Config{
			Level:      slog.LevelDebug,
			FilePath:   logFile,
			MaxSizeMB:  10,
			MaxBackups: 3,
			Console:    false,
		})
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}

		logger.Info("test message")

		if _, err := os.Stat(logFile); os.IsNotExist(err) {
			t.Errorf("Log file was not created at %s", logFile)
		}
	})

	t.Run("no outputs configured falls back to console", func(t *testing.T) {
		logger, err := NewLogger(Config{Level: slog.LevelInfo, Console: false})
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		if logger == nil {
			t.Fatal("NewLogger returned nil logger")
		}
	})
}

func TestSetDefault(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	err := SetDefault(Config{
		Level:      slog.LevelDebug,
		FilePath:   logFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
		Console:    false,
	})
	if err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}

	slog.Info("test message from default logger")

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Errorf("Log file was not created at %s", logFile)
	}
}
