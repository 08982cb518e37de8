// Package logging configures slog and stores error records in system_logs.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs a JSON slog logger on stdout. LOG_LEVEL=debug turns on debug output.
func Setup() {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
