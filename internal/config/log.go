package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the process logger. Invalid settings fall back to info
// level text output; Validate reports them.
func NewLogger(cfg LogSection, w io.Writer) *slog.Logger {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
