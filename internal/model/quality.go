package model

// CheckSeverity indicates how serious a quality finding is
type CheckSeverity string

const (
	SeverityPass CheckSeverity = "pass"
	SeverityWarn CheckSeverity = "warn"
	SeverityFail CheckSeverity = "fail"
)

// QualityCheckResult is one data-quality diagnostic with transparent details
type QualityCheckResult struct {
	Name     string                 `json:"name"`     // e.g. "Sample Size", "Missing Ratio"
	Passed   bool                   `json:"passed"`
	Severity CheckSeverity          `json:"severity"`
	Message  string                 `json:"message"`
	Details  map[string]interface{} `json:"details,omitempty"` // Numeric inputs, thresholds, formulas
}

// QualityThresholds configures the data-quality gateway
type QualityThresholds struct {
	MinNCount       int     `json:"min_n_count" yaml:"min_n_count" mapstructure:"min_n_count"`
	MaxMissingRatio float64 `json:"max_missing_ratio" yaml:"max_missing_ratio" mapstructure:"max_missing_ratio"`
	MinAlpha        float64 `json:"min_cronbach_alpha" yaml:"min_cronbach_alpha" mapstructure:"min_cronbach_alpha"`
}

// DefaultQualityThresholds returns the standard gateway thresholds
func DefaultQualityThresholds() QualityThresholds {
	return QualityThresholds{
		MinNCount:       5,
		MaxMissingRatio: 0.2,
		MinAlpha:        0.7,
	}
}
