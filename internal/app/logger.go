package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/abhisek/verbiz/internal/config"
)

// NewLogger creates a *slog.Logger from cfg and installs it as the default.
//
// Format "json" produces structured output; anything else produces text.
// Level is one of debug, info, warn, error (case-insensitive) and defaults
// to info. Output goes to stderr so command output on stdout stays clean.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
