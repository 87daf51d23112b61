package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/dbfkit/go-dbase/dbase"
)

// parseLevel converts a string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds the process logger. With debug set the decoder's own
// debug output goes to the same writer.
func newLogger(w io.Writer, level string, format string, debug bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: parseLevel(level)}
	if debug {
		options.Level = slog.LevelDebug
		options.AddSource = true
	}
	dbase.Debug(debug, w)
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(w, options))
	}
	return slog.New(slog.NewTextHandler(w, options))
}
