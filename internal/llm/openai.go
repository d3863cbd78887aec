package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/okazmin/kompas/internal/model"
)

// openRouterBaseURL is used when the provider is "openrouter" and no
// explicit base URL is configured.
const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenAIProvider implements Provider against the OpenAI chat API. It also
// serves OpenRouter-compatible endpoints through the BaseURL setting.
type OpenAIProvider struct {
	client  *openai.Client
	config  model.LLMConfig
	limiter *rate.Limiter
}

// NewOpenAIProvider creates a provider from the given configuration
func NewOpenAIProvider(config model.LLMConfig) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set KOMPAS_LLM_API_KEY)")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	} else if strings.EqualFold(config.Provider, "openrouter") {
		clientConfig.BaseURL = openRouterBaseURL
	}

	rpm := config.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  config,
		limiter: rate.NewLimiter(rate.Limit(rpm/60.0), 1),
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	if strings.EqualFold(p.config.Provider, "openrouter") {
		return "openrouter"
	}
	return "openai"
}

// IsAvailable checks if the endpoint accepts the configured credentials
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Suggest generates CSV suggestion rows via the chat completions API
func (p *OpenAIProvider) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResponse, error) {
	if req.Config == nil {
		return nil, fmt.Errorf("suggestion request needs a workspace config")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	chosen := req.Model
	if chosen == "" {
		chosen = p.config.Model
	}
	if chosen == "" {
		chosen = openai.GPT4oMini
	}

	timeout := time.Duration(p.config.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model: chosen,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: BuildSystemPrompt(req.Kind),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildUserPrompt(req),
			},
		},
		Temperature: 0.7,
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from %s", p.Name())
	}

	return &SuggestResponse{
		CSV:        stripMarkdownFence(resp.Choices[0].Message.Content),
		Model:      chosen,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}

// stripMarkdownFence removes a surrounding ``` code fence, which some
// models add despite instructions.
func stripMarkdownFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:] // Drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
