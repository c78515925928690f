package main

import (
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

// newLogger builds the application logger. Records go through slog so the
// library packages can take a *slog.Logger, and are rendered by charm's log
// handler.
func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel charmlog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = charmlog.DebugLevel
	case "info":
		logLevel = charmlog.InfoLevel
	case "warn":
		logLevel = charmlog.WarnLevel
	case "error":
		logLevel = charmlog.ErrorLevel
	default:
		logLevel = charmlog.InfoLevel
	}

	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Prefix:          "charkov",
		Level:           logLevel,
		ReportTimestamp: true,
		Formatter:       charmlog.TextFormatter,
	})
	return slog.New(handler)
}
