package logger

import (
	"io"
	log "log/slog"
	"strings"
)

// Init installs the process-wide slog logger. format is "json" or "text".
func Init(w io.Writer, level, format string) {
	opts := &log.HandlerOptions{Level: ParseLevel(level)}

	var h log.Handler
	if format == "json" {
		h = log.NewJSONHandler(w, opts)
	} else {
		h = log.NewTextHandler(w, opts)
	}

	log.SetDefault(log.New(&ContextHandler{h}))
}

func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
