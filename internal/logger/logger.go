// Package logger builds the structured JSON logger shared by every process.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/guudz-audit-ledger/internal/config"
)

// ParseLevel maps a configured level name onto slog, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a JSON slog.Logger on stdout tagged with the application name and environment.
func NewLogger(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := ParseLevel(cfg.Logging.Level)

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})

	logger := slog.New(handler)
	if cfg.Application.Name != "" {
		logger = logger.With("app", cfg.Application.Name, "env", cfg.Application.Env)
	}

	logger.Info("logger initialized", "level", level)

	return logger
}

// ForComponent scopes a logger to one component of the process.
func ForComponent(l *slog.Logger, component string) *slog.Logger {
	return l.With("component", component)
}
