package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okazmin/kompas/internal/model"
)

var cardHeader = []string{"id", "title", "decision_question", "stakeholders", "drivers", "kpis", "rules"}

var driverHeader = []string{"id", "label", "survey_items", "range"}

// ReadCards parses decision cards from CSV. Each row is one card; rules are
// encoded as "condition:STATUS:message" segments joined by "|". A rule with
// an unrecognized status is kept with status UNKNOWN.
func ReadCards(r io.Reader) ([]model.DecisionCardConfig, error) {
	rows, index, err := readRecords(r, "id", "title")
	if err != nil {
		return nil, err
	}

	var cards []model.DecisionCardConfig
	for _, row := range rows {
		card := model.DecisionCardConfig{
			ID:               field(row, index, "id"),
			Title:            field(row, index, "title"),
			DecisionQuestion: field(row, index, "decision_question"),
			Stakeholders:     splitList(field(row, index, "stakeholders")),
			RequiredEvidence: model.RequiredEvidence{
				Drivers: splitList(field(row, index, "drivers")),
				KPIs:    splitList(field(row, index, "kpis")),
			},
			Rules: parseRules(field(row, index, "rules")),
		}
		if card.ID == "" {
			return nil, fmt.Errorf("card row missing id")
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// WriteCards encodes decision cards as CSV in the same format ReadCards accepts
func WriteCards(w io.Writer, cards []model.DecisionCardConfig) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(cardHeader); err != nil {
		return err
	}
	for _, card := range cards {
		segments := make([]string, len(card.Rules))
		for i, rule := range card.Rules {
			segments[i] = fmt.Sprintf("%s:%s:%s", rule.Condition, rule.Status, rule.Message)
		}
		row := []string{
			card.ID,
			card.Title,
			card.DecisionQuestion,
			strings.Join(card.Stakeholders, ","),
			strings.Join(card.RequiredEvidence.Drivers, ","),
			strings.Join(card.RequiredEvidence.KPIs, ","),
			strings.Join(segments, " | "),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadDrivers parses driver definitions from CSV. The range column uses
// "min-max" notation and defaults to 1-5.
func ReadDrivers(r io.Reader) ([]model.DriverConfig, error) {
	rows, index, err := readRecords(r, "id", "label")
	if err != nil {
		return nil, err
	}

	var drivers []model.DriverConfig
	for _, row := range rows {
		driver := model.DriverConfig{
			ID:          field(row, index, "id"),
			Label:       field(row, index, "label"),
			SurveyItems: splitList(field(row, index, "survey_items")),
			Range:       parseRange(field(row, index, "range")),
		}
		if driver.ID == "" {
			return nil, fmt.Errorf("driver row missing id")
		}
		drivers = append(drivers, driver)
	}
	return drivers, nil
}

// WriteDrivers encodes driver definitions as CSV
func WriteDrivers(w io.Writer, drivers []model.DriverConfig) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(driverHeader); err != nil {
		return err
	}
	for _, d := range drivers {
		rangeStr := "1-5"
		if len(d.Range) == 2 {
			rangeStr = fmt.Sprintf("%g-%g", d.Range[0], d.Range[1])
		}
		row := []string{d.ID, d.Label, strings.Join(d.SurveyItems, ","), rangeStr}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// readRecords parses a CSV with a header row and verifies required columns
func readRecords(r io.Reader, required ...string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("csv has no header row")
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, nil, fmt.Errorf("csv missing required column %q", name)
		}
	}
	return records[1:], index, nil
}

func field(row []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseRules decodes "cond:STATUS:message | cond:STATUS:message" segments.
// Colons inside the message are preserved; a missing message gets a default.
func parseRules(s string) []model.RuleConfig {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var rules []model.RuleConfig
	for _, segment := range strings.Split(s, "|") {
		parts := strings.SplitN(segment, ":", 3)
		if len(parts) < 2 {
			continue
		}
		cond := strings.TrimSpace(parts[0])
		status := model.ParseCardStatus(strings.ToUpper(strings.TrimSpace(parts[1])))
		msg := fmt.Sprintf("Rule triggered: %s", cond)
		if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
			msg = strings.TrimSpace(parts[2])
		}
		rules = append(rules, model.RuleConfig{Condition: cond, Status: status, Message: msg})
	}
	return rules
}

func parseRange(s string) []float64 {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return []float64{1, 5}
	}
	lo, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	hi, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return []float64{1, 5}
	}
	return []float64{lo, hi}
}
