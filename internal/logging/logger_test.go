package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		// Anything unrecognized falls back to info.
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}

	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q): expected %v, got %v", input, want, got)
		}
	}
}

func TestDiscardIsSilent(t *testing.T) {
	logger := Discard()
	if logger.Enabled(nil, slog.LevelError) {
		t.Fatal("expected discard logger to drop error records")
	}
}
