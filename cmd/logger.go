package cmd

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger writes JSON in production and text elsewhere. Unknown levels
// fall back to info.
func NewLogger(w io.Writer, appEnv, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if appEnv == "production" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
