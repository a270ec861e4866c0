package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the recorded quiz history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, closeStore, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		n, err := ledger.Count(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if n == 0 {
			fmt.Fprintln(out, "History is already empty.")
			return nil
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Fprintf(out, "Delete %d history entries? [y/N] ", n)
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		if err := ledger.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d entries.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
