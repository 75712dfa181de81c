package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog replaces the default logger with a text handler writing to
// stderr, debug enables debug level records.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
