package llm

import (
	"strings"
	"testing"

	"github.com/okazmin/kompas/internal/model"
)

func TestParseSuggestionKind(t *testing.T) {
	for _, s := range []string{"drivers", "Cards", "SURVEY"} {
		if _, err := ParseSuggestionKind(s); err != nil {
			t.Errorf("ParseSuggestionKind(%q): %v", s, err)
		}
	}
	if _, err := ParseSuggestionKind("recipes"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	drivers := BuildSystemPrompt(KindDrivers)
	if !strings.Contains(drivers, "survey_items") {
		t.Errorf("driver prompt missing column hint: %s", drivers)
	}
	cards := BuildSystemPrompt(KindCards)
	if !strings.Contains(cards, "condition:STATUS:message") {
		t.Errorf("card prompt missing rule syntax: %s", cards)
	}
	if !strings.Contains(cards, "no header, no markdown") {
		t.Error("prompt should pin the output format")
	}
}

func TestBuildUserPrompt(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.CustomerName = "Acme"
	cfg.Drivers = []model.DriverConfig{
		{ID: "safety", Label: "Safety", SurveyItems: []string{"Q1", "Q2"}},
	}
	cfg.DecisionCards = []model.DecisionCardConfig{
		{ID: "D001", Title: "Prevent Turnover"},
	}

	prompt := BuildUserPrompt(SuggestRequest{Kind: KindCards, Config: cfg, Count: 3})
	for _, want := range []string{"Acme", "safety (Safety): items Q1,Q2", "D001: Prevent Turnover", "Suggest 3 new cards"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	empty := BuildUserPrompt(SuggestRequest{Kind: KindDrivers, Config: model.DefaultConfig()})
	if !strings.Contains(empty, "(none)") || !strings.Contains(empty, "Suggest 2 new drivers") {
		t.Errorf("unexpected prompt for empty workspace:\n%s", empty)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(model.LLMConfig{})
	if err != nil || p != nil {
		t.Errorf("empty provider should disable suggestions, got %v, %v", p, err)
	}

	if _, err := NewProvider(model.LLMConfig{Provider: "gemini"}); err == nil {
		t.Error("expected error for unsupported provider")
	}

	if _, err := NewProvider(model.LLMConfig{Provider: "openai"}); err == nil {
		t.Error("expected error without API key")
	}

	p, err = NewProvider(model.LLMConfig{Provider: "openrouter", APIKey: "sk-test"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "openrouter" {
		t.Errorf("unexpected provider name %q", p.Name())
	}
}

func TestStripMarkdownFence(t *testing.T) {
	cases := map[string]string{
		"a,b,c":                      "a,b,c",
		"```csv\na,b,c\n```":         "a,b,c",
		"```\na,b,c\nd,e,f\n```":     "a,b,c\nd,e,f",
		"  ```csv\na,b,c\n```\n\n":   "a,b,c",
	}
	for in, want := range cases {
		if got := stripMarkdownFence(in); got != want {
			t.Errorf("stripMarkdownFence(%q) = %q, want %q", in, got, want)
		}
	}
}
