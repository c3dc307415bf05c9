package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"quizdoc/internal/bank"
)

var checkCmd = &cobra.Command{
	Use:   "check [source]",
	Short: "Validate a quiz document and report every problem",
	Long: "Check parses a quiz document without starting a quiz. It prints how many\n" +
		"question blocks were accepted, which were rejected and why, and any\n" +
		"numbering warnings. The source argument overrides the configured one.",
	Args: cobra.MaximumNArgs(1),
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

		pool, report, err := loadPool(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		jsonOut, _ := cmd.Flags().GetBool("json")
		if jsonOut {
			out := struct {
				Source string `json:"source"`
				*bank.Report
			}{cfg.Source, report}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		fmt.Printf("%s: %d blocks, %d accepted, %d rejected, %d warnings\n",
			cfg.Source, report.Blocks, report.Accepted, report.Rejected, len(report.Warnings))

		if len(report.Rejections) > 0 {
			fmt.Println("\nRejections:")
			for _, rej := range report.Rejections {
				fmt.Printf("  #%-5s %-18s %s\n", rej.Number, rej.Rule, rej.Detail)
			}

			counts := lo.CountValuesBy(report.Rejections, func(r bank.Rejection) string {
				return r.Rule
			})
			rules := lo.Keys(counts)
			slices.Sort(rules)
			fmt.Println("\nBy rule:")
			for _, rule := range rules {
				fmt.Printf("  %-18s %d\n", rule, counts[rule])
			}
		}

		if len(report.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for _, w := range report.Warnings {
				fmt.Printf("  #%-5s %s\n", w.Number, w.Message)
			}
		}

		if report.Clean() {
			fmt.Printf("Document is clean: %d usable questions.\n", len(pool))
		}

		if strict, _ := cmd.Flags().GetBool("strict"); strict && !report.Clean() {
			return fmt.Errorf("%d rejected blocks, %d warnings", report.Rejected, len(report.Warnings))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().Bool("json", false, "Print the report as JSON")
	checkCmd.Flags().Bool("strict", false, "Exit nonzero when the document has rejections or warnings")
}
