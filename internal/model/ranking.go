package model

import "fmt"

// Method selects the multi-criteria ranking formula
type Method int

const (
	MethodSAW Method = iota // Simple Additive Weighting
	MethodWASPAS            // Weighted Aggregated Sum Product Assessment
	MethodTOPSIS            // Closeness to ideal solution
	MethodComposite         // Borda-style ensemble of the other three
)

func (m Method) String() string {
	switch m {
	case MethodSAW:
		return "saw"
	case MethodWASPAS:
		return "waspas"
	case MethodTOPSIS:
		return "topsis"
	case MethodComposite:
		return "composite"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod maps a method name to its Method value
func ParseMethod(s string) (Method, error) {
	switch s {
	case "saw":
		return MethodSAW, nil
	case "waspas":
		return MethodWASPAS, nil
	case "topsis":
		return MethodTOPSIS, nil
	case "composite", "borda":
		return MethodComposite, nil
	default:
		return 0, fmt.Errorf("unknown ranking method %q (want saw, waspas, topsis or composite)", s)
	}
}

// Weights holds the criterion weights for ranking
type Weights struct {
	Impact      float64 `json:"impact" yaml:"impact" mapstructure:"impact"`
	Urgency     float64 `json:"urgency" yaml:"urgency" mapstructure:"urgency"`
	Uncertainty float64 `json:"uncertainty" yaml:"uncertainty" mapstructure:"uncertainty"`
}

// DefaultWeights returns unit weights for all three criteria
func DefaultWeights() Weights {
	return Weights{Impact: 1.0, Urgency: 1.0, Uncertainty: 1.0}
}

// Candidate is a transient ranking input derived from one decision card
type Candidate struct {
	ID          string  `json:"id"`
	Impact      float64 `json:"impact"`      // 0..1, benefit
	Urgency     float64 `json:"urgency"`     // 0..1, benefit
	Uncertainty float64 `json:"uncertainty"` // 0..1, cost

	// Back-references for callers; not consulted by the ranking engine
	Card  *DecisionCardConfig `json:"-"`
	State *DecisionCardState  `json:"-"`
}

// Ranked is a candidate annotated with its score and method-specific breakdown
type Ranked struct {
	Candidate
	Score   float64 `json:"score"`
	Explain Explain `json:"explain"`
}

// Explain is the method-specific explainability payload, keyed by Method
type Explain struct {
	Method Method `json:"method"`

	SAW       *SAWExplain       `json:"saw,omitempty"`
	WASPAS    *WASPASExplain    `json:"waspas,omitempty"`
	TOPSIS    *TOPSISExplain    `json:"topsis,omitempty"`
	Composite *CompositeExplain `json:"composite,omitempty"`
}

// SAWExplain exposes the three signed additive terms
type SAWExplain struct {
	ImpactTerm      float64 `json:"impact_term"`
	UrgencyTerm     float64 `json:"urgency_term"`
	UncertaintyTerm float64 `json:"uncertainty_term"` // Negative: a penalty
}

// WASPASExplain exposes the additive and multiplicative sub-scores
type WASPASExplain struct {
	SAWScore float64 `json:"saw_score"`
	WPMScore float64 `json:"wpm_score"`
	Lambda   float64 `json:"lambda"` // Blend factor between SAW and WPM
}

// TOPSISExplain exposes the distances to the ideal and anti-ideal points
type TOPSISExplain struct {
	DistIdeal     float64 `json:"dist_ideal"`      // S+
	DistAntiIdeal float64 `json:"dist_anti_ideal"` // S-
}

// CompositeExplain exposes the per-method ranks feeding the ensemble
type CompositeExplain struct {
	SAWRank     int     `json:"saw_rank"`     // 1-indexed
	WASPASRank  int     `json:"waspas_rank"`  // 1-indexed
	TOPSISRank  int     `json:"topsis_rank"`  // 1-indexed
	AverageRank float64 `json:"average_rank"` // 1-indexed for display
}
