package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindreset/internal/bank"
	"github.com/abhisek/mindreset/internal/config"
	"github.com/abhisek/mindreset/internal/engine"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect question banks",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a question bank against the schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var b *bank.Bank
		if len(args) == 1 {
			b, err = bank.LoadFile(args[0])
		} else {
			b, err = loadBank(cmd, cfg)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d questions in %d levels\n", b.Title(), b.Len(), len(b.Levels()))
		for i, lvl := range b.Levels() {
			fmt.Fprintf(out, "  Level %d  %-24s  %3d\n", lvl.Number, lvl.Title, b.LevelSizes()[i])
		}

		if cfg.Milestone.Policy == "" || cfg.Milestone.Policy == config.PolicyEvery {
			interval := cfg.Milestone.Interval
			if interval <= 0 {
				interval = engine.DefaultMilestoneInterval
			}
			if !b.AlignedTo(interval) {
				fmt.Fprintf(out, "warning: level sizes are not multiples of %d; level-up cues will not match level ends\n", interval)
			}
		}
		fmt.Fprintln(out, "ok")
		return nil
	},
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the questions of the active bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		b, err := loadBank(cmd, cfg)
		if err != nil {
			return err
		}

		var levels []bank.Level
		for _, lvl := range b.Levels() {
			if level == 0 || lvl.Number == level {
				levels = append(levels, lvl)
			}
		}
		if len(levels) == 0 {
			return fmt.Errorf("no level %d in %s", level, b.Title())
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%4s  %5s  %-60s  %s\n", "ID", "Level", "Question", "Keys")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		count := 0
		for _, lvl := range levels {
			for _, q := range lvl.Questions {
				text := q.Text
				if len([]rune(text)) > 60 {
					text = string([]rune(text)[:57]) + "..."
				}
				fmt.Fprintf(out, "%4d  %5d  %-60s  %s\n",
					q.ID, lvl.Number, text, strings.Join(q.Keys(), ""))
				count++
			}
		}

		fmt.Fprintf(out, "\n%d questions\n", count)
		return nil
	},
}

func init() {
	bankListCmd.Flags().Int("level", 0, "Only list questions of this level number")

	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankListCmd)
}
