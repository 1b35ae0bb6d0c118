package main

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger returns an slog logger backed by a charm log handler. Unknown
// levels fall back to info; config validation rejects them earlier.
func newLogger(w io.Writer, level string) *slog.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
	})
	return slog.New(handler)
}
