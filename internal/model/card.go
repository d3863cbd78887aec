package model

// CardStatus is the traffic-light status of a decision card
type CardStatus string

const (
	StatusRed     CardStatus = "RED"     // A rule flagged a critical condition
	StatusYellow  CardStatus = "YELLOW"  // A rule flagged a warning condition
	StatusGreen   CardStatus = "GREEN"   // No rule matched
	StatusUnknown CardStatus = "UNKNOWN" // Required evidence missing, rules never ran
)

// ParseCardStatus maps a raw string to a CardStatus, defaulting to UNKNOWN
func ParseCardStatus(s string) CardStatus {
	switch CardStatus(s) {
	case StatusRed, StatusYellow, StatusGreen:
		return CardStatus(s)
	default:
		return StatusUnknown
	}
}

// RuleConfig is one gating condition on a decision card
type RuleConfig struct {
	Condition string     `json:"condition" yaml:"condition"` // e.g. "psychological_safety < 3.0"
	Status    CardStatus `json:"status" yaml:"status"`       // Status applied when the condition holds
	Message   string     `json:"message" yaml:"message"`     // Human-readable explanation
}

// RecommendationTemplate is a pre-authored action draft attached to a card
type RecommendationTemplate struct {
	ID             string `json:"id" yaml:"id"`
	Action         string `json:"action" yaml:"action"`
	Preconditions  string `json:"preconditions,omitempty" yaml:"preconditions,omitempty"`
	Risks          string `json:"risks,omitempty" yaml:"risks,omitempty"`
	SuccessMetrics string `json:"success_metrics,omitempty" yaml:"success_metrics,omitempty"`
}

// DriverConfig describes a measured latent construct (e.g. psychological safety)
// backed by one or more survey item columns.
type DriverConfig struct {
	ID          string   `json:"id" yaml:"id"`
	Label       string   `json:"label" yaml:"label"`
	SurveyItems []string `json:"survey_items" yaml:"survey_items"` // Ordered item column names
	Range       []float64 `json:"range" yaml:"range"`              // [min, max] of the response scale
}

// RequiredEvidence lists the evidence variables a card needs before its rules run
type RequiredEvidence struct {
	Drivers []string `json:"drivers,omitempty" yaml:"drivers,omitempty"`
	KPIs    []string `json:"kpis,omitempty" yaml:"kpis,omitempty"`
}

// Names returns the union of driver ids and KPI ids, in declared order
func (r RequiredEvidence) Names() []string {
	names := make([]string, 0, len(r.Drivers)+len(r.KPIs))
	names = append(names, r.Drivers...)
	names = append(names, r.KPIs...)
	return names
}

// DecisionCardConfig is one decision to be prioritized
type DecisionCardConfig struct {
	ID               string                   `json:"id" yaml:"id"`
	Title            string                   `json:"title" yaml:"title"`
	DecisionQuestion string                   `json:"decision_question,omitempty" yaml:"decision_question,omitempty"`
	Stakeholders     []string                 `json:"stakeholders,omitempty" yaml:"stakeholders,omitempty"`
	RequiredEvidence RequiredEvidence         `json:"required_evidence" yaml:"required_evidence"`
	Rules            []RuleConfig             `json:"rules" yaml:"rules"`
	Templates        []RecommendationTemplate `json:"recommendation_templates,omitempty" yaml:"recommendation_templates,omitempty"`

	// Persisted simulation overrides (nil = not set)
	SimulationImpact  *float64 `json:"simulation_impact,omitempty" yaml:"simulation_impact,omitempty"`
	SimulationUrgency *float64 `json:"simulation_urgency,omitempty" yaml:"simulation_urgency,omitempty"`

	// Persisted human override (set by reviewers, read-only to the core)
	HumanDecisionStatus string `json:"human_decision_status,omitempty" yaml:"human_decision_status,omitempty"` // "Approve", "Edit", "Override"
	HumanOverrideReason string `json:"human_override_reason,omitempty" yaml:"human_override_reason,omitempty"`
}

// DecisionCardState is the computed result for one card, created fresh each evaluation
type DecisionCardState struct {
	CardID            string                  `json:"card_id"`
	Status            CardStatus              `json:"status"`
	KeyEvidence       []string                `json:"key_evidence"` // Ordered evidence-trail messages
	Recommendation    *RecommendationTemplate `json:"recommendation_draft,omitempty"`
	ConfidencePenalty float64                 `json:"confidence_penalty"`
	TotalPriority     float64                 `json:"total_priority"`
}
