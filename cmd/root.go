package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizdoc",
	Short: "Terminal quiz runner for markdown question banks",
	Long: "Quizdoc — loads a markdown quiz document, draws a random subset of its\n" +
		"questions and runs them as an interactive terminal quiz.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, appOverrides{})
	},
}

func Execute() error {
	// A local .env file feeds the QUIZDOC_* variables, same as the
	// real environment would.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: XDG config dir)")
	rootCmd.PersistentFlags().String("db", "", "Path to history database (overrides QUIZDOC_DB env var)")

	rootCmd.AddCommand(playCmd, checkCmd, questionsCmd, statsCmd, resetCmd, updateCmd, versionCmd)
}
