package model

import "time"

// Config is the complete application configuration.
// Workspace files (drivers, cards) are loaded into it by the loader package;
// runtime settings come from flags, environment and ~/.kompas/config.yaml.
type Config struct {
	Version      string `json:"version" yaml:"version" mapstructure:"version"`
	CustomerName string `json:"customer_name" yaml:"customer_name" mapstructure:"customer_name"`

	Weights Weights           `json:"priority_weights" yaml:"priority_weights" mapstructure:"priority_weights"`
	Quality QualityThresholds `json:"quality_gates" yaml:"quality_gates" mapstructure:"quality_gates"`

	Board  BoardConfig  `json:"board" yaml:"board" mapstructure:"board"`
	Cache  CacheConfig  `json:"cache" yaml:"cache" mapstructure:"cache"`
	LLM    LLMConfig    `json:"llm" yaml:"llm" mapstructure:"llm"`
	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`

	Drivers       []DriverConfig       `json:"drivers" yaml:"drivers" mapstructure:"drivers"`
	DecisionCards []DecisionCardConfig `json:"decision_cards" yaml:"decision_cards" mapstructure:"decision_cards"`
}

// BoardConfig controls board evaluation and ranking
type BoardConfig struct {
	Method  string `json:"method" yaml:"method" mapstructure:"method"` // saw, waspas, topsis, composite
	Workers int    `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls board-result caching
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// LLMConfig controls the optional suggestion generator.
// Suggestions never affect scoring.
type LLMConfig struct {
	Provider          string  `json:"provider" yaml:"provider" mapstructure:"provider"` // "openai", "openrouter", "" = disabled
	Model             string  `json:"model" yaml:"model" mapstructure:"model"`
	APIKey            string  `json:"-" yaml:"-" mapstructure:"-"` // Environment only, never persisted
	BaseURL           string  `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`
	TimeoutSeconds    int     `json:"timeout_seconds" yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	RequestsPerMinute float64 `json:"requests_per_minute" yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `json:"include_footer" yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Version:      "1.0",
		CustomerName: "Unknown",
		Weights:      DefaultWeights(),
		Quality:      DefaultQualityThresholds(),
		Board: BoardConfig{
			Method:  "saw",
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:          "", // Disabled by default
			Model:             "gpt-4o-mini",
			TimeoutSeconds:    30,
			RequestsPerMinute: 20,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
