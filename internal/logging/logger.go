package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application's JSON logger at the provided level. An
// unrecognized level string falls back to info.
func New(level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler)
}

// Discard returns a logger that drops all output. Useful for tests.
func Discard() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelError + 1}
	return slog.New(slog.NewJSONHandler(io.Discard, opts))
}

func parseLevel(level string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
