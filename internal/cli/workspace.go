package cli

import (
	"fmt"
	"os"

	"github.com/okazmin/kompas/internal/loader"
	"github.com/okazmin/kompas/internal/model"
	"github.com/okazmin/kompas/internal/quality"
)

// loadWorkspace reads the workspace config and prints rule-validation
// warnings. Unparseable rules are kept; they surface as diagnostics at
// evaluation time.
func loadWorkspace(path string) (*model.Config, error) {
	if path == "" {
		return nil, fmt.Errorf("a workspace file is required (--workspace)")
	}
	cfg, err := loader.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	for _, warning := range loader.ValidateRules(cfg) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}
	return cfg, nil
}

// loadOptionalTable reads a CSV table, tolerating an empty path
func loadOptionalTable(path, kind string) (*quality.Table, error) {
	if path == "" {
		return nil, nil
	}
	table, err := loader.LoadTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s data: %w", kind, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %s data: %d rows, %d columns\n",
			kind, table.Rows(), len(table.Columns()))
	}
	return table, nil
}
