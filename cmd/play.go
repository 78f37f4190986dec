package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Resume the quiz where you left off",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}
