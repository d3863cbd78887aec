package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okazmin/kompas/internal/board"
	"github.com/okazmin/kompas/internal/render"
)

var (
	workspacePath string
	surveyPath    string
	kpiPath       string
	method        string
	outJSON       string
	outMD         string
	evalTimeout   time.Duration
	noCache       bool
	noFooter      bool
)

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Evaluate the decision board and rank all cards",
	Long: `Board runs one full evaluation cycle:
- Assess data quality (sample size, missing values, scale reliability)
- Build the evidence context from survey and KPI data
- Resolve every decision card to a status via its gating rules
- Rank the cards with the configured multi-criteria method

Example:
  kompas board --workspace config.yaml --survey survey.csv --kpi kpi.csv
  kompas board --workspace config.yaml --survey survey.csv --method topsis --md board.md`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)

	boardCmd.Flags().StringVarP(&workspacePath, "workspace", "w", "", "workspace config YAML (required)")
	boardCmd.Flags().StringVar(&surveyPath, "survey", "", "survey responses CSV")
	boardCmd.Flags().StringVar(&kpiPath, "kpi", "", "KPI measurements CSV")
	boardCmd.Flags().StringVarP(&method, "method", "m", "", "ranking method: saw, waspas, topsis, composite (default from workspace)")
	boardCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	boardCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional, default prints to stdout)")
	boardCmd.Flags().DurationVar(&evalTimeout, "timeout", time.Minute, "overall evaluation timeout")
	boardCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	boardCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	_ = boardCmd.MarkFlagRequired("workspace")
}

func runBoard(cmd *cobra.Command, args []string) error {
	report, err := evaluateBoard()
	if err != nil {
		return err
	}
	return writeReport(report, "")
}

// evaluateBoard loads the workspace and data files and runs one evaluation
func evaluateBoard() (*board.Report, error) {
	cfg, err := loadWorkspace(workspacePath)
	if err != nil {
		return nil, err
	}
	if method != "" {
		cfg.Board.Method = method
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	survey, err := loadOptionalTable(surveyPath, "survey")
	if err != nil {
		return nil, err
	}
	kpis, err := loadOptionalTable(kpiPath, "KPI")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	report, err := board.New(cfg).Evaluate(ctx, survey, kpis)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Evaluated %d cards with %s\n", len(report.Entries), report.Method)
		fmt.Fprintf(os.Stderr, "✓ Data quality penalty: %.2f\n", report.QualityPenalty)
	}
	return report, nil
}

// writeReport renders the report to the requested outputs. Without --json
// or --md the markdown goes to stdout.
func writeReport(report *board.Report, snapshotID string) error {
	opts := render.Options{
		Verbose:       verbose,
		IncludeFooter: !noFooter,
		SnapshotID:    snapshotID,
	}

	if outJSON != "" {
		data, err := render.JSON(report)
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if err := os.WriteFile(outJSON, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outJSON, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON report: %s\n", outJSON)
		}
	}

	markdown := render.Markdown(report, opts)
	if outMD != "" {
		if err := os.WriteFile(outMD, []byte(markdown), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outMD, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown report: %s\n", outMD)
		}
		return nil
	}
	if outJSON == "" {
		fmt.Print(markdown)
	}
	return nil
}
