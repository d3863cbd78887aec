// Package llm generates workspace-content suggestions (drivers, cards,
// survey rows) from an existing configuration. Suggestions are advisory
// CSV text for the user to review and import; they never feed into scoring.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/okazmin/kompas/internal/model"
)

// SuggestionKind selects what the provider should generate
type SuggestionKind string

const (
	KindDrivers SuggestionKind = "drivers"
	KindCards   SuggestionKind = "cards"
	KindSurvey  SuggestionKind = "survey"
)

// ParseSuggestionKind maps a raw string to a SuggestionKind
func ParseSuggestionKind(s string) (SuggestionKind, error) {
	switch SuggestionKind(strings.ToLower(s)) {
	case KindDrivers, KindCards, KindSurvey:
		return SuggestionKind(strings.ToLower(s)), nil
	default:
		return "", fmt.Errorf("unknown suggestion kind %q (want drivers, cards or survey)", s)
	}
}

// Provider defines the interface for suggestion backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Suggest generates CSV suggestion rows for the requested kind
	Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// SuggestRequest contains the input for suggestion generation
type SuggestRequest struct {
	// Kind selects drivers, cards or survey rows
	Kind SuggestionKind

	// Config provides the existing workspace as context
	Config *model.Config

	// Count is the number of rows to generate (default 2)
	Count int

	// Model overrides the configured model for this request
	Model string
}

// SuggestResponse contains the generated suggestions
type SuggestResponse struct {
	// CSV holds the suggested rows, without a header
	CSV string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// BuildSystemPrompt constructs the system instruction for a suggestion kind
func BuildSystemPrompt(kind SuggestionKind) string {
	var columns string
	switch kind {
	case KindSurvey:
		columns = "Columns: determined by the driver definitions (e.g. employee_id, Q1, Q2...)"
	case KindDrivers:
		columns = "Columns: id, label, survey_items (comma-separated), range (e.g. 1-5)"
	default:
		columns = "Columns: id, title, decision_question, stakeholders, drivers (ids), kpis, rules (condition:STATUS:message | ...)"
	}
	return fmt.Sprintf(`You are a data architect extension for an evidence-based decision system.
Your task is to suggest additional %s based on the existing configuration provided.

Output format: CSV rows only (no header, no markdown).
%s

Generate high-quality, relevant data rows.`, kind, columns)
}

// BuildUserPrompt serializes the workspace context and the ask
func BuildUserPrompt(req SuggestRequest) string {
	count := req.Count
	if count <= 0 {
		count = 2
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Customer: %s\n\nExisting drivers:\n", req.Config.CustomerName)
	if len(req.Config.Drivers) == 0 {
		b.WriteString("(none)\n")
	}
	for _, d := range req.Config.Drivers {
		fmt.Fprintf(&b, "- %s (%s): items %s\n", d.ID, d.Label, strings.Join(d.SurveyItems, ","))
	}
	b.WriteString("\nExisting decision cards:\n")
	if len(req.Config.DecisionCards) == 0 {
		b.WriteString("(none)\n")
	}
	for _, c := range req.Config.DecisionCards {
		fmt.Fprintf(&b, "- %s: %s\n", c.ID, c.Title)
	}
	fmt.Fprintf(&b, "\nSuggest %d new %s:", count, req.Kind)
	return b.String()
}
