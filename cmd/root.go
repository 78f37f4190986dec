package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mindreset/internal/config"
	"github.com/abhisek/mindreset/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mindreset",
	Short: "RESET: a 100-mission quiz for taking charge of your neocortex",
	Long: "mindreset is a terminal quiz game. Each answer is reptilian (A), limbic (B) or\n" +
		"neocortex (C) and earns XP; progress is saved locally between runs.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MINDRESET_DB env var)")
	rootCmd.PersistentFlags().String("bank", "", "Question bank file (.json or .yaml); default is the bundled bank")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: mindreset.yaml in . or the XDG config dir)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(certificateCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (MINDRESET_DB or the config file), then the
// default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
