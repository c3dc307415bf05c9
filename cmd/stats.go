package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show attempt statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer st.Close()

		repo := st.Attempts()
		stats, err := repo.Stats(ctx)
		if err != nil {
			return err
		}
		if stats.Attempts == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		var accuracy float64
		if stats.QuestionsAnswered > 0 {
			accuracy = float64(stats.CorrectAnswers) / float64(stats.QuestionsAnswered) * 100
		}

		fmt.Printf("Attempts:           %d\n", stats.Attempts)
		fmt.Printf("Questions answered: %d\n", stats.QuestionsAnswered)
		fmt.Printf("Correct:            %d (%.1f%%)\n", stats.CorrectAnswers, accuracy)
		fmt.Printf("Average score:      %.1f\n", stats.AvgScore)
		fmt.Printf("Best / worst:       %d / %d\n", stats.BestScore, stats.WorstScore)

		hardest, err := repo.HardestQuestions(ctx, 5)
		if err != nil {
			return err
		}
		if len(hardest) > 0 {
			fmt.Println("\nMost missed:")
			for _, q := range hardest {
				fmt.Printf("  %3.0f%%  %-14s  %d of %d\n",
					q.MissRate*100, q.Title, q.Missed, q.Attempts)
			}
		}
		return nil
	},
}
