// Package logging builds the leveled diagnostic logger the store and CLI
// collaborate with, and manages the dated log files it writes to.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// logFileFormat names one log file per day, e.g. accountant_07-Mar-2026.log.
const logFileFormat = "accountant_02-Jan-2006.log"

// CreateLogFile ensures dir exists and returns the path of today's log
// file, creating it if needed.
func CreateLogFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dir, time.Now().Format(logFileFormat))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing log file: %w", err)
	}
	return path, nil
}

// New returns a leveled text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}

// ParseLevel converts a config level string to a slog.Level. An empty
// string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
