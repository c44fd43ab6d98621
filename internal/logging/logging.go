package logging

import (
	"io"
	"log/slog"

	"github.com/pterm/pterm"
)

// New returns a slog logger rendered by pterm on w. Debug enables request
// and per-page logging.
func New(w io.Writer, debug bool) *slog.Logger {
	level := pterm.LogLevelInfo
	if debug {
		level = pterm.LogLevelDebug
	}
	logger := pterm.DefaultLogger.WithLevel(level).WithWriter(w)
	return slog.New(pterm.NewSlogHandler(logger))
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
