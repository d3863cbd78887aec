package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okazmin/kompas/internal/quality"
)

var (
	qualityWorkspace string
	qualitySurvey    string
)

// qualityCmd represents the quality command
var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Assess survey data quality without evaluating the board",
	Long: `Quality runs the data-quality gateway in isolation: sample size,
missing-value ratio, and Cronbach's alpha per driver scale. The resulting
penalty is the uncertainty input the board evaluation would use.

Example:
  kompas quality --workspace config.yaml --survey survey.csv`,
	RunE: runQuality,
}

func init() {
	rootCmd.AddCommand(qualityCmd)

	qualityCmd.Flags().StringVarP(&qualityWorkspace, "workspace", "w", "", "workspace config YAML (required)")
	qualityCmd.Flags().StringVar(&qualitySurvey, "survey", "", "survey responses CSV")

	_ = qualityCmd.MarkFlagRequired("workspace")
}

func runQuality(cmd *cobra.Command, args []string) error {
	cfg, err := loadWorkspace(qualityWorkspace)
	if err != nil {
		return err
	}
	survey, err := loadOptionalTable(qualitySurvey, "survey")
	if err != nil {
		return err
	}

	gateway := quality.NewGateway(cfg.Quality)
	penalty, checks := gateway.Assess(survey, cfg.Drivers)

	fmt.Printf("Data quality penalty: %.2f\n\n", penalty)
	for _, check := range checks {
		marker := "✓"
		if !check.Passed {
			marker = "✗"
		}
		fmt.Printf("%s %-30s [%s] %s\n", marker, check.Name, check.Severity, check.Message)
	}
	if penalty >= 1.0 {
		fmt.Println("\nConfidence in any board evaluation over this data would be zero.")
	}
	return nil
}
