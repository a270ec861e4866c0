package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect and validate question banks",
}

var bankSubjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List subjects with their question counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bankFromFlags(cmd)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SUBJECT\tWEEKS\tQUESTIONS")
		for _, s := range b.Subjects() {
			weeks := b.WeeksFor(s)
			total := 0
			for _, k := range weeks {
				total += b.CountFor(s, k)
			}
			fmt.Fprintf(w, "%s\t%d\t%d\n", s, len(weeks), total)
		}
		return w.Flush()
	},
}

var bankWeeksCmd = &cobra.Command{
	Use:   "weeks <subject>",
	Short: "List the weeks available for a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bankFromFlags(cmd)
		if err != nil {
			return err
		}
		subject := args[0]
		if !b.HasSubject(subject) {
			return fmt.Errorf("unknown subject %q", subject)
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "YEAR\tWEEK\tQUESTIONS")
		for _, k := range b.WeeksFor(subject) {
			fmt.Fprintf(w, "%d\t%d\t%d\n", k.Year(), k.Week(), b.CountFor(subject, k))
		}
		return w.Flush()
	},
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a bank file, or the configured bank, for problems",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			b   *bank.Bank
			err error
		)
		if len(args) == 1 {
			b, err = bank.LoadFile(args[0])
		} else {
			b, err = bankFromFlags(cmd)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d questions in %d subjects\n", b.Len(), len(b.Subjects()))
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankSubjectsCmd)
	bankCmd.AddCommand(bankWeeksCmd)
	bankCmd.AddCommand(bankValidateCmd)
}

func bankFromFlags(cmd *cobra.Command) (*bank.Bank, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return loadBank(cfg)
}
