package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// LogFileName is the log file created next to the database by default.
const LogFileName = "quizbank.log"

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Stderr returns a logger for CLI subcommands.
func Stderr(level slog.Level) *slog.Logger {
	return New(os.Stderr, level)
}

// PathFor returns the log path to use: explicit if set, otherwise a file
// beside the database.
func PathFor(explicit, dbPath string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(filepath.Dir(dbPath), LogFileName)
}

// OpenFile returns a logger appending to path. The TUI owns the terminal,
// so it logs here instead of stderr. The caller closes the returned file.
func OpenFile(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}
