package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Export or import quiz history as JSON",
}

var historyExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the history to a file, or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, closeStore, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		var w io.Writer = cmd.OutOrStdout()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		n, err := ledger.Export(cmd.Context(), w)
		if err != nil {
			return err
		}
		if len(args) == 1 && args[0] != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d entries to %s\n", n, args[0])
		}
		return nil
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append entries from a JSON history file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, closeStore, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		n, err := ledger.Import(cmd.Context(), f, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries\n", n)
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyImportCmd)
}

func openLedger(cmd *cobra.Command) (*history.Ledger, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, _, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	ledger := history.NewLedger(st.HistoryRepo(), cfg.HistorySlot, cliLogger(cfg))
	return ledger, func() { _ = st.Close() }, nil
}
