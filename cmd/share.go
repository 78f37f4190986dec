package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindreset/internal/progress"
	"github.com/abhisek/mindreset/internal/share"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Share your saved score",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := progress.Load(ctx, e.store.Progress(), e.bank.Len())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		res := share.New(e.cfg.Share, e.log).Share(ctx, st.Score)
		fmt.Fprintln(cmd.OutOrStdout(), res.Notice)
		return nil
	},
}
