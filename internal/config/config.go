package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means the XDG default.
	DBPath string

	// BankPath is a question bank JSON file. Empty uses the embedded bank.
	BankPath string

	// FixedOptionSubjects keep their bank option order instead of being
	// shuffled per question.
	FixedOptionSubjects []string

	// HistorySlot names the ledger slot. Default: "scoreHistory".
	HistorySlot string

	// LogPath is where the TUI writes its log. Empty means next to the DB.
	LogPath string

	// LogLevel is one of debug, info, warn, error. Default: "info".
	LogLevel string

	// Strict makes invalid session transitions panic.
	Strict bool

	// Theme is the initial theme when none was saved: "dark" or "light".
	Theme string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		HistorySlot: "scoreHistory",
		LogLevel:    "info",
		Theme:       "dark",
	}
}

// Load reads a .env file from the working directory, if present, and
// then builds the Config from the environment.
func Load() (Config, error) {
	// A missing .env is fine; variables may come from the shell.
	_ = godotenv.Load()
	cfg := FromEnv()
	return cfg, cfg.Validate()
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("QUIZBANK_DB"); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv("QUIZBANK_BANK"); p != "" {
		cfg.BankPath = p
	}
	if s := os.Getenv("QUIZBANK_FIXED_OPTIONS"); s != "" {
		cfg.FixedOptionSubjects = splitList(s)
	}
	if s := os.Getenv("QUIZBANK_HISTORY_SLOT"); s != "" {
		cfg.HistorySlot = s
	}
	if p := os.Getenv("QUIZBANK_LOG"); p != "" {
		cfg.LogPath = p
	}
	if l := os.Getenv("QUIZBANK_LOG_LEVEL"); l != "" {
		cfg.LogLevel = strings.ToLower(l)
	}
	if s := os.Getenv("QUIZBANK_STRICT"); s != "" {
		cfg.Strict, _ = strconv.ParseBool(s)
	}
	if t := os.Getenv("QUIZBANK_THEME"); t != "" {
		cfg.Theme = strings.ToLower(t)
	}

	return cfg
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("QUIZBANK_THEME must be dark or light, got %q", c.Theme)
	}
	if strings.TrimSpace(c.HistorySlot) == "" {
		return fmt.Errorf("QUIZBANK_HISTORY_SLOT must not be blank")
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("QUIZBANK_LOG_LEVEL: unknown level %q", s)
	}
	return l, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
