// Package loader reads and writes workspace files: the YAML configuration
// and the CSV files carrying survey data, KPIs, drivers and decision cards.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/okazmin/kompas/internal/condition"
	"github.com/okazmin/kompas/internal/model"
)

// LoadConfig reads a workspace configuration from a YAML file, filling
// unset fields with defaults.
func LoadConfig(path string) (*model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := model.DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration as YAML, creating parent directories
// as needed.
func SaveConfig(path string, cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// RuleWarning reports a card rule whose condition does not parse.
// Such rules are kept; they simply count as a diagnostic at evaluation time.
type RuleWarning struct {
	CardID    string
	Condition string
	Err       error
}

func (w RuleWarning) String() string {
	return fmt.Sprintf("%s: invalid rule condition %q: %v", w.CardID, w.Condition, w.Err)
}

// ValidateRules parse-checks every rule condition in the configuration
// and returns one warning per unparseable condition.
func ValidateRules(cfg *model.Config) []RuleWarning {
	var warnings []RuleWarning
	for _, card := range cfg.DecisionCards {
		for _, rule := range card.Rules {
			if err := condition.Validate(rule.Condition); err != nil {
				warnings = append(warnings, RuleWarning{
					CardID:    card.ID,
					Condition: rule.Condition,
					Err:       err,
				})
			}
		}
	}
	return warnings
}
