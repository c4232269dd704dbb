package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/plangridgo/internal/config"
)

// newLogger creates an isolated slog.Logger. It does not set the global
// logger. Unknown levels fall back to info.
func newLogger(s config.LogSettings, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Level)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if s.Format == "json" {
		return slog.New(slog.NewJSONHandler(outW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}
