package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okazmin/kompas/internal/llm"
)

var (
	suggestWorkspace string
	suggestProvider  string
	suggestModel     string
	suggestCount     int
)

// suggestCmd represents the suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest <drivers|cards|survey>",
	Short: "Generate workspace-content suggestions with an LLM",
	Long: `Suggest asks a language model for additional drivers, decision
cards or synthetic survey rows, using the existing workspace as context.
The output is CSV in the same format 'kompas' imports; review it before
adding it to the workspace. Suggestions never affect scoring.

The API key is read from KOMPAS_LLM_API_KEY.

Example:
  kompas suggest cards --workspace config.yaml
  kompas suggest drivers --workspace config.yaml --provider openrouter --model google/gemma-2-27b-it`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().StringVarP(&suggestWorkspace, "workspace", "w", "", "workspace config YAML (required)")
	suggestCmd.Flags().StringVar(&suggestProvider, "provider", "", "LLM provider: openai, openrouter (default from workspace)")
	suggestCmd.Flags().StringVar(&suggestModel, "model", "", "model name (default from workspace)")
	suggestCmd.Flags().IntVar(&suggestCount, "count", 2, "number of rows to suggest")

	_ = suggestCmd.MarkFlagRequired("workspace")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	kind, err := llm.ParseSuggestionKind(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadWorkspace(suggestWorkspace)
	if err != nil {
		return err
	}
	if suggestProvider != "" {
		cfg.LLM.Provider = suggestProvider
	}
	if suggestModel != "" {
		cfg.LLM.Model = suggestModel
	}
	cfg.LLM.APIKey = os.Getenv("KOMPAS_LLM_API_KEY")

	provider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return err
	}
	if provider == nil {
		return fmt.Errorf("no LLM provider configured (set llm.provider in the workspace or pass --provider)")
	}

	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Requesting %d %s from %s...\n", suggestCount, kind, provider.Name())
	}

	resp, err := provider.Suggest(ctx, llm.SuggestRequest{
		Kind:   kind,
		Config: cfg,
		Count:  suggestCount,
	})
	if err != nil {
		return fmt.Errorf("suggestion failed: %w", err)
	}

	fmt.Println(resp.CSV)
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Generated with %s (%d tokens)\n", resp.Model, resp.TokensUsed)
	}
	return nil
}
