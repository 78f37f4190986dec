package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindreset/internal/engine"
	"github.com/abhisek/mindreset/internal/progress"
	"github.com/abhisek/mindreset/internal/screens/history"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show saved progress and answer totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")
		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		total := e.bank.Len()
		st, err := progress.Load(ctx, e.store.Progress(), total)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		status := "in progress"
		if st.Position >= total {
			status = "cleared"
		}
		fmt.Fprintf(out, "%s: %s\n", e.bank.Title(), status)
		fmt.Fprintf(out, "  Missions: %d/%d (%d%%)\n", st.Position, total, st.Position*100/total)
		fmt.Fprintf(out, "  XP:       %d of %d\n", st.Score, engine.Points("C")*total)

		totals, err := e.store.Answers().Totals(ctx)
		if err != nil {
			return fmt.Errorf("load totals: %w", err)
		}
		if len(totals) > 0 {
			answered := 0
			for _, t := range totals {
				answered += t.Count
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%-18s  %7s  %6s  %5s\n", "Brain system", "Answers", "XP", "Share")
			fmt.Fprintln(out, strings.Repeat("─", 42))
			for _, t := range totals {
				fmt.Fprintf(out, "%-18s  %7d  %6d  %4d%%\n",
					history.CategoryName(t.Key), t.Count, t.Points, t.Count*100/answered)
			}
		}

		if recent <= 0 {
			return nil
		}
		records, err := e.store.Answers().Recent(ctx, recent)
		if err != nil {
			return fmt.Errorf("load recent answers: %w", err)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-16s  %7s  %-18s  %s\n", "Answered", "Mission", "Brain system", "XP")
		fmt.Fprintln(out, strings.Repeat("─", 52))
		for _, r := range records {
			fmt.Fprintf(out, "%-16s  %7d  %-18s  %+d\n",
				r.AnsweredAt.Local().Format(time.DateOnly+" 15:04"), r.QuestionID,
				history.CategoryName(r.Key), r.Points)
		}
		fmt.Fprintf(out, "\n%d answers\n", len(records))
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("recent", 10, "Number of recent answers to list (0 to hide)")
}
