// Package logging wires the process logger: JSON to stdout, ERROR+ rows
// batched into the system_logs table, 30-day retention.
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the bootstrap logger, JSON to stdout at INFO. Once the
// database is connected, main swaps in Fanout so errors also reach
// system_logs.
func Setup() {
	slog.SetDefault(slog.New(StdoutHandler()))
}

// StdoutHandler is the stdout half of the fanout, shared between bootstrap
// and the post-connect configuration.
func StdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
