package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okazmin/kompas/internal/model"
)

func TestLoadConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workspace", "config.yaml")

	cfg := model.DefaultConfig()
	cfg.CustomerName = "Acme"
	cfg.Board.Method = "topsis"
	cfg.Drivers = []model.DriverConfig{
		{ID: "safety", Label: "Safety", SurveyItems: []string{"Q1"}, Range: []float64{1, 5}},
	}
	cfg.DecisionCards = []model.DecisionCardConfig{
		{
			ID:    "D001",
			Title: "Card",
			Rules: []model.RuleConfig{{Condition: "safety < 3", Status: model.StatusRed, Message: "low"}},
		},
	}

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.CustomerName != "Acme" || loaded.Board.Method != "topsis" {
		t.Errorf("unexpected config: %+v", loaded)
	}
	if len(loaded.Drivers) != 1 || loaded.Drivers[0].ID != "safety" {
		t.Errorf("drivers not preserved: %+v", loaded.Drivers)
	}
	if len(loaded.DecisionCards) != 1 || loaded.DecisionCards[0].Rules[0].Status != model.StatusRed {
		t.Errorf("cards not preserved: %+v", loaded.DecisionCards)
	}
}

func TestLoadConfig_DefaultsForUnsetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("customer_name: Minimal\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.CustomerName != "Minimal" {
		t.Errorf("expected customer name from file, got %q", loaded.CustomerName)
	}
	if loaded.Board.Workers != model.DefaultConfig().Board.Workers {
		t.Errorf("expected default worker count, got %d", loaded.Board.Workers)
	}
	if loaded.Quality.MinNCount != model.DefaultQualityThresholds().MinNCount {
		t.Errorf("expected default quality thresholds, got %+v", loaded.Quality)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateRules(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.DecisionCards = []model.DecisionCardConfig{
		{
			ID: "D001",
			Rules: []model.RuleConfig{
				{Condition: "safety < 3.0", Status: model.StatusRed},
				{Condition: "safety <", Status: model.StatusYellow},
			},
		},
		{
			ID: "D002",
			Rules: []model.RuleConfig{
				{Condition: "import os", Status: model.StatusRed},
			},
		},
	}

	warnings := ValidateRules(cfg)
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if warnings[0].CardID != "D001" || warnings[1].CardID != "D002" {
		t.Errorf("unexpected warning order: %v", warnings)
	}
	if !strings.Contains(warnings[0].String(), "safety <") {
		t.Errorf("warning should carry the condition: %s", warnings[0])
	}
}

func TestReadCards(t *testing.T) {
	cards, err := ReadCards(strings.NewReader(CardTemplateCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	card := cards[0]
	if card.ID != "D001" || card.Title != "Prevent Junior Turnover" {
		t.Errorf("unexpected card: %+v", card)
	}
	if len(card.RequiredEvidence.Drivers) != 2 || card.RequiredEvidence.Drivers[0] != "DRV_001" {
		t.Errorf("unexpected drivers: %v", card.RequiredEvidence.Drivers)
	}
	if len(card.RequiredEvidence.KPIs) != 2 || card.RequiredEvidence.KPIs[1] != "overtime_hours" {
		t.Errorf("unexpected kpis: %v", card.RequiredEvidence.KPIs)
	}
	if len(card.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(card.Rules))
	}
	if card.Rules[0].Condition != "psychological_safety < 3.0" || card.Rules[0].Status != model.StatusRed {
		t.Errorf("unexpected first rule: %+v", card.Rules[0])
	}
	if card.Rules[1].Status != model.StatusYellow || card.Rules[1].Message != "High overtime" {
		t.Errorf("unexpected second rule: %+v", card.Rules[1])
	}
}

func TestReadCards_DefaultsAndBadStatus(t *testing.T) {
	csv := "id,title,rules\nD1,T,score < 1 : PURPLE\n"
	cards, err := ReadCards(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	rule := cards[0].Rules[0]
	if rule.Status != model.StatusUnknown {
		t.Errorf("unrecognized status should map to UNKNOWN, got %s", rule.Status)
	}
	if !strings.Contains(rule.Message, "score < 1") {
		t.Errorf("missing message should default to the condition, got %q", rule.Message)
	}
}

func TestCards_RoundTrip(t *testing.T) {
	original, err := ReadCards(strings.NewReader(CardTemplateCSV))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteCards(&buf, original); err != nil {
		t.Fatal(err)
	}
	restored, err := ReadCards(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if len(restored) != len(original) {
		t.Fatalf("card count changed: %d -> %d", len(original), len(restored))
	}
	if restored[0].Rules[0].Condition != original[0].Rules[0].Condition {
		t.Errorf("rule condition changed: %q", restored[0].Rules[0].Condition)
	}
	if restored[0].Rules[1].Message != original[0].Rules[1].Message {
		t.Errorf("rule message changed: %q", restored[0].Rules[1].Message)
	}
}

func TestDrivers_RoundTrip(t *testing.T) {
	original, err := ReadDrivers(strings.NewReader(DriverTemplateCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(original) != 2 {
		t.Fatalf("expected 2 drivers, got %d", len(original))
	}
	if original[0].Label != "Psychological Safety" || len(original[0].SurveyItems) != 3 {
		t.Errorf("unexpected driver: %+v", original[0])
	}
	if original[0].Range[0] != 1 || original[0].Range[1] != 5 {
		t.Errorf("unexpected range: %v", original[0].Range)
	}

	var buf bytes.Buffer
	if err := WriteDrivers(&buf, original); err != nil {
		t.Fatal(err)
	}
	restored, err := ReadDrivers(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(restored) != 2 || restored[1].ID != "DRV_002" {
		t.Errorf("round trip lost drivers: %+v", restored)
	}
}

func TestReadDrivers_BadRangeFallsBack(t *testing.T) {
	csv := "id,label,survey_items,range\nd1,L,Q1,banana\n"
	drivers, err := ReadDrivers(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if drivers[0].Range[0] != 1 || drivers[0].Range[1] != 5 {
		t.Errorf("expected 1-5 fallback, got %v", drivers[0].Range)
	}
}

func TestReadCards_MissingColumn(t *testing.T) {
	if _, err := ReadCards(strings.NewReader("id\nD1\n")); err == nil {
		t.Error("expected error for missing title column")
	}
}
