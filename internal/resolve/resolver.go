// Package resolve assigns a traffic-light status to decision cards by
// evaluating their rules against an evidence context.
package resolve

import (
	"fmt"
	"strings"

	"github.com/okazmin/kompas/internal/condition"
	"github.com/okazmin/kompas/internal/model"
)

// Resolver evaluates decision cards against evidence contexts
type Resolver struct{}

// NewResolver creates a new resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve evaluates one card and returns a fresh, final state.
//
// Missing required evidence short-circuits to UNKNOWN with priority 0 and no
// rule evaluation. Otherwise rules run in declared order, first match wins.
// A rule that fails to evaluate is recorded in the evidence trail and skipped,
// so one malformed rule never takes down the rest of the card.
func (r *Resolver) Resolve(card model.DecisionCardConfig, ctx map[string]float64) model.DecisionCardState {
	state := model.DecisionCardState{
		CardID: card.ID,
		Status: model.StatusGreen,
	}

	var missing []string
	for _, name := range card.RequiredEvidence.Names() {
		if _, ok := ctx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		state.Status = model.StatusUnknown
		state.KeyEvidence = append(state.KeyEvidence,
			fmt.Sprintf("Missing evidence: %s", strings.Join(missing, ", ")))
		state.TotalPriority = 0
		return state
	}

	for _, rule := range card.Rules {
		matched, err := condition.Evaluate(rule.Condition, ctx)
		if err != nil {
			// Fail-soft: a broken rule is diagnosed, not fatal
			state.KeyEvidence = append(state.KeyEvidence,
				fmt.Sprintf("Rule error: %s: %v", rule.Condition, err))
			continue
		}
		if matched {
			state.Status = rule.Status
			state.KeyEvidence = append(state.KeyEvidence,
				fmt.Sprintf("Condition met: %s (%s)", rule.Condition, rule.Message))
			break
		}
	}

	if (state.Status == model.StatusRed || state.Status == model.StatusYellow) && len(card.Templates) > 0 {
		// No selection heuristic yet: the first template is the draft
		template := card.Templates[0]
		state.Recommendation = &template
	}

	return state
}
