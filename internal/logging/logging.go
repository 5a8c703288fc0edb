package logging

import (
	"io"
	"log/slog"
	"os"
)

// New initializes a new slog logger and sets it as the default.
// format is "json" for production; anything else gives the text handler used
// during development.
func New(format string) *slog.Logger {
	logger := slog.New(newHandler(os.Stdout, format))
	slog.SetDefault(logger)
	return logger
}

func newHandler(w io.Writer, format string) slog.Handler {
	switch format {
	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true, // Adds source file and line number
		})
	}
}
