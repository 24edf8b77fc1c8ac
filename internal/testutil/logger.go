package testutil

import (
	"io"
	"log/slog"
)

// NopLogger satisfies components that require a logger without
// spraying log lines into test output
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
