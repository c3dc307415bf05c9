package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"quizdoc/internal/bank"
)

var questionsCmd = &cobra.Command{
	Use:   "questions [source]",
	Short: "List the questions in a document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			cfg.Source = args[0]
		}
		if cfg.Source == "" {
			return fmt.Errorf("no document: pass a source argument or configure one")
		}

		pool, _, err := loadPool(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		if search, _ := cmd.Flags().GetString("search"); search != "" {
			pool = lo.Filter(pool, func(q bank.Question, _ int) bool {
				return fuzzy.MatchNormalizedFold(search, q.Title+" "+q.Content)
			})
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(pool)
		}

		if len(pool) == 0 {
			fmt.Println("No matching questions.")
			return nil
		}
		for _, q := range pool {
			marker := " "
			if q.IsMulti() {
				marker = "*"
			}
			fmt.Printf("%s %s  %-60s  %d options\n",
				marker, q.ID, firstLine(q.Content, 60), len(q.Options))
		}
		fmt.Printf("\n%d questions (* = multiple answers)\n", len(pool))
		return nil
	},
}

func init() {
	questionsCmd.Flags().String("search", "", "Fuzzy-filter questions by title and body")
	questionsCmd.Flags().Bool("json", false, "Print the questions as JSON")
}

// firstLine returns the first line of s, truncated to limit runes.
func firstLine(s string, limit int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit-1]) + "…"
	}
	return s
}
