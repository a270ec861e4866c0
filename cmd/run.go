package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/app"
	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/config"
	"github.com/abhisek/quizbank/internal/history"
	"github.com/abhisek/quizbank/internal/logging"
	"github.com/abhisek/quizbank/internal/pool"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b, err := loadBank(cfg)
	if err != nil {
		return err
	}

	// A failed path lookup still gets a log file in the working directory.
	dbPath, pathErr := resolveDBPath(cfg)
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger, logFile, err := logging.OpenFile(logging.PathFor(cfg.LogPath, dbPath), level)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()

	st, notice := openStoreOrWarn(dbPath, pathErr, logger)
	var settings store.SettingsRepo
	if st != nil {
		defer st.Close()
		settings = st.SettingsRepo()
	}
	logger.Info("starting", "db", dbPath, "questions", b.Len(), "subjects", len(b.Subjects()))

	return app.Run(app.Options{
		Engine:   newEngine(cfg, b, st, logger),
		Settings: settings,
		Logger:   logger,
		Theme:    cfg.Theme,
		Notice:   notice,
	})
}

// openStoreOrWarn opens the database at dbPath. Quizzes must stay
// available when storage is broken, so a failure is logged and returned as
// a notice for the home screen with a nil store.
func openStoreOrWarn(dbPath string, pathErr error, logger *slog.Logger) (*store.Store, string) {
	err := pathErr
	if err == nil {
		st, openErr := store.Open(dbPath)
		if openErr == nil {
			return st, ""
		}
		err = openErr
	}
	logger.Warn("history unavailable, continuing without it", "db", dbPath, "error", err)
	return nil, "History is unavailable this run: " + err.Error()
}

// newEngine wires the engine. A nil store leaves it without a ledger, so
// results are graded but not recorded.
func newEngine(cfg config.Config, b *bank.Bank, st *store.Store, logger *slog.Logger) *quiz.Engine {
	var ledger *history.Ledger
	if st != nil {
		ledger = history.NewLedger(st.HistoryRepo(), cfg.HistorySlot, logger)
	}
	return quiz.New(quiz.Config{
		Bank:    b,
		Ledger:  ledger,
		Builder: pool.NewBuilder(pool.WithFixedOptionOrder(cfg.FixedOptionSubjects...)),
		Logger:  logger,
		Strict:  cfg.Strict,
	})
}
