package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/config"
	"github.com/abhisek/quizbank/internal/logging"
	"github.com/abhisek/quizbank/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizbank",
	Short: "Weekly multiple-choice quiz practice",
	Long:  "Quizbank is a terminal quiz runner: pick a subject and weeks, answer shuffled questions, and track your accuracy over time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZBANK_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Path to a question bank JSON file (overrides QUIZBANK_BANK env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env and the environment, then applies flags, which
// take priority.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.BankPath = p
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db or QUIZBANK_DB,
// then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cfg config.Config) (*store.Store, string, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, "", fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("open store: %w", err)
	}
	return st, dbPath, nil
}

// loadBank returns the configured bank file, or the embedded bank.
func loadBank(cfg config.Config) (*bank.Bank, error) {
	if cfg.BankPath == "" {
		return bank.Default()
	}
	return bank.LoadFile(cfg.BankPath)
}

// cliLogger logs to stderr at warn or above, or at the configured level
// when that is stricter.
func cliLogger(cfg config.Config) *slog.Logger {
	level, _ := config.ParseLevel(cfg.LogLevel)
	return logging.Stderr(max(level, slog.LevelWarn))
}
