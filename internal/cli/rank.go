package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Evaluate the board and print a compact ranking table",
	Long: `Rank runs the same evaluation as 'board' but prints only the
ranking: position, card, status and priority score. Useful for quick
method comparisons.

Example:
  kompas rank --workspace config.yaml --survey survey.csv --method waspas`,
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVarP(&workspacePath, "workspace", "w", "", "workspace config YAML (required)")
	rankCmd.Flags().StringVar(&surveyPath, "survey", "", "survey responses CSV")
	rankCmd.Flags().StringVar(&kpiPath, "kpi", "", "KPI measurements CSV")
	rankCmd.Flags().StringVarP(&method, "method", "m", "", "ranking method: saw, waspas, topsis, composite (default from workspace)")
	rankCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")

	_ = rankCmd.MarkFlagRequired("workspace")
}

func runRank(cmd *cobra.Command, args []string) error {
	report, err := evaluateBoard()
	if err != nil {
		return err
	}

	fmt.Printf("Method: %s  Quality penalty: %.2f\n\n", report.Method, report.QualityPenalty)
	fmt.Printf("%-4s %-10s %-35s %-8s %s\n", "#", "ID", "Title", "Status", "Score")
	for i, entry := range report.Entries {
		fmt.Printf("%-4d %-10s %-35s %-8s %.3f\n",
			i+1, entry.Card.ID, truncate(entry.Card.Title, 35), entry.State.Status, entry.Score)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
