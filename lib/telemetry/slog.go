package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs a default text handler, `debug` lowers the level so
// per-request logging in the scraping clients shows up.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
