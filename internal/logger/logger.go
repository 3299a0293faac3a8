// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a configured level name to a slog level. Unknown names
// fall back to info.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New builds a logger writing to w. Format "text" selects the text handler;
// anything else produces JSON.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl, ok := ParseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
	}
	return logger
}

// Setup creates a logger on stderr and installs it as the slog default, so
// components falling back to slog.Default() share it.
func Setup(level, format string) *slog.Logger {
	logger := New(os.Stderr, level, format)
	slog.SetDefault(logger)
	return logger
}
