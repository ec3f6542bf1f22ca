package common

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	logger     *slog.Logger
	loggerOnce sync.Once
)

// Logger returns a singleton slog logger configured via the LOG_LEVEL environment variable.
func Logger() *slog.Logger {
	loggerOnce.Do(func() {
		handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(os.Getenv("LOG_LEVEL"))})
		logger = slog.New(handler)
	})
	return logger
}

// ParseLevel maps debug/warn/error to slog levels; anything else is info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
