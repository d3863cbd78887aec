package llm

import (
	"fmt"
	"strings"

	"github.com/okazmin/kompas/internal/model"
)

// NewProvider creates a suggestion provider from configuration.
// An empty provider name means suggestions are disabled; both the
// provider and the error are nil in that case.
func NewProvider(config model.LLMConfig) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai", "openrouter":
		return NewOpenAIProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, openrouter)", config.Provider)
	}
}
