package logger

import (
	"log/slog"
	"os"
)

// New creates a JSON slog.Logger. The level comes from the LOG_LEVEL
// environment variable and defaults to info.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelFromEnv()})
	return slog.New(handler)
}

func levelFromEnv() slog.Level {
	var level slog.Level
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err == nil {
			return level
		}
	}
	return slog.LevelInfo
}
