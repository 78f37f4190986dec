package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindreset/internal/certificate"
	"github.com/abhisek/mindreset/internal/engine"
	"github.com/abhisek/mindreset/internal/progress"
	"github.com/abhisek/mindreset/internal/screens/history"
)

var certificateCmd = &cobra.Command{
	Use:   "certificate",
	Short: "Write a PDF certificate for the saved run",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		outPath, _ := cmd.Flags().GetString("out")
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
		totals, err := e.store.Answers().Totals(ctx)
		if err != nil {
			return fmt.Errorf("load totals: %w", err)
		}

		data := certificate.Data{
			Name:     name,
			Title:    e.bank.Title(),
			Score:    st.Score,
			MaxScore: engine.Points("C") * total,
			Answered: st.Position,
			Total:    total,
			Date:     time.Now(),
		}
		if recent, err := e.store.Answers().Recent(ctx, 1); err == nil && len(recent) == 1 {
			data.RunID = recent[0].RunID
		}
		for _, t := range totals {
			data.Breakdown = append(data.Breakdown, certificate.Category{
				Name:   history.CategoryName(t.Key),
				Key:    t.Key,
				Count:  t.Count,
				Points: t.Points,
			})
		}

		pdf, err := certificate.Bytes(data)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
			return fmt.Errorf("write certificate: %w", err)
		}

		if !data.Finished() {
			fmt.Fprintf(cmd.OutOrStdout(), "Run not finished yet (%d/%d missions).\n", data.Answered, data.Total)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Certificate written to %s\n", outPath)
		return nil
	},
}

func init() {
	certificateCmd.Flags().String("name", "", "Name printed on the certificate")
	certificateCmd.Flags().StringP("out", "o", "reset-certificate.pdf", "Output file")
	_ = certificateCmd.MarkFlagRequired("name")
}
