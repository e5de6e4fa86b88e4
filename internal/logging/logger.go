// Package logging builds the leveled slog loggers used by the uvvis tools.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelOff is above every standard level; a logger at LevelOff writes
// nothing.
const LevelOff = slog.LevelError + 100

// ParseLevel maps a level name to a slog.Level.
// Supported values: "debug", "info", "warn", "error", "off" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "off", "quiet", "none":
		return LevelOff
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled text slog.Logger writing to w.
// The time attribute is dropped so operator output stays short.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	if lvl == LevelOff {
		w = io.Discard
	}

	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
