package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/review"
	"github.com/abhisek/quizbank/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz history and accuracy over time",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, closeStore, err := openLedger(cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		entries := ledger.ReadAll(cmd.Context())

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No quizzes recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tDATE\tSCORE\tACCURACY\tDURATION")
		for i, e := range review.Newest(entries) {
			fmt.Fprintf(w, "%d\t%s\t%d/%d\t%s%%\t%s\n",
				len(entries)-i,
				e.Date.Local().Format("2006-01-02 15:04"),
				e.Score, e.Total,
				e.AccuracyText(),
				e.Duration(),
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		values := make([]float64, 0, len(entries))
		for _, p := range review.Series(entries) {
			values = append(values, p.Accuracy)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, components.BarChart(values, 60, 8))

		t := review.Totals(entries)
		fmt.Fprintf(out, "\n%d quizzes · %d/%d correct · mean %.2f%% · best %.2f%% · %s total\n",
			t.Sessions, t.TotalScore, t.TotalAnswered, t.MeanAccuracy, t.BestAccuracy,
			time.Duration(t.TotalSecs)*time.Second)
		return nil
	},
}
