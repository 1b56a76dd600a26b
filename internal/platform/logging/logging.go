package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup builds the process logger from LOG_LEVEL / LOG_FORMAT style values
// and installs it as the slog default. Output goes to w, or stderr when nil.
func Setup(level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	l := slog.New(h)
	slog.SetDefault(l)
	return l
}

// ParseLevel maps debug/warn/error to their slog levels; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
