// File: internal/logging/logging.go (complete file)

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup creates a logger and sets it as the process-wide default.
// Packages that are not handed a logger fall back to slog.Default().
func Setup(level string) {
	slog.SetDefault(New(level))
}

func New(level string) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter is New with a caller-supplied destination. Unknown levels
// fall back to info.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}
