package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ov := appOverrides{}
		ov.source, _ = cmd.Flags().GetString("source")
		ov.count, _ = cmd.Flags().GetInt("count")
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			ov.seed = &seed
		}
		return runApp(cmd, ov)
	},
}

func init() {
	playCmd.Flags().String("source", "", "Quiz document path or URL (overrides config)")
	playCmd.Flags().Int("count", 0, "Questions per run (overrides config)")
	playCmd.Flags().Uint64("seed", 0, "Seed for a reproducible question draw")
}
