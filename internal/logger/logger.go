// Package logger builds the structured logger used across presetgen.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a text logger writing to w. Verbose enables debug records.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Default creates a logger on stderr
func Default(verbose bool) *slog.Logger {
	return New(os.Stderr, verbose)
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
