package quality

import (
	"math"
	"testing"

	"github.com/okazmin/kompas/internal/model"
)

func mustTable(t *testing.T, names []string, rows ...[]Cell) *Table {
	t.Helper()
	table, err := NewTable(names)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	for _, row := range rows {
		if err := table.AppendRow(row); err != nil {
			t.Fatalf("AppendRow: %v", err)
		}
	}
	return table
}

func findCheck(checks []model.QualityCheckResult, name string) (model.QualityCheckResult, bool) {
	for _, c := range checks {
		if c.Name == name {
			return c, true
		}
	}
	return model.QualityCheckResult{}, false
}

func TestAssess_LowSampleSize(t *testing.T) {
	gateway := NewGateway(model.QualityThresholds{MinNCount: 5, MaxMissingRatio: 0.2})
	table := mustTable(t, []string{"dummy"},
		[]Cell{Value(1)},
		[]Cell{Value(2)},
	)

	penalty, checks := gateway.Assess(table, nil)

	check, ok := findCheck(checks, "Sample Size")
	if !ok {
		t.Fatal("expected a Sample Size check")
	}
	if check.Passed || check.Severity != model.SeverityWarn {
		t.Errorf("expected failing warn check, got %+v", check)
	}
	if penalty < 0.4 {
		t.Errorf("expected penalty >= 0.4, got %f", penalty)
	}
}

func TestAssess_MissingRatio(t *testing.T) {
	gateway := NewGateway(model.QualityThresholds{MinNCount: 5, MaxMissingRatio: 0.2})
	// 5 rows, 1 column, 3 missing -> ratio 0.6
	table := mustTable(t, []string{"col"},
		[]Cell{Value(1)},
		[]Cell{Null()},
		[]Cell{Null()},
		[]Cell{Null()},
		[]Cell{Value(2)},
	)

	penalty, checks := gateway.Assess(table, nil)

	check, ok := findCheck(checks, "Missing Ratio")
	if !ok {
		t.Fatal("expected a Missing Ratio check")
	}
	if check.Passed || check.Severity != model.SeverityWarn {
		t.Errorf("expected failing warn check, got %+v", check)
	}
	ratio, _ := check.Details["missing_ratio"].(float64)
	if math.Abs(ratio-0.6) > 1e-9 {
		t.Errorf("expected missing ratio 0.6, got %f", ratio)
	}
	if penalty < 0.3 {
		t.Errorf("expected penalty >= 0.3, got %f", penalty)
	}
}

func TestAssess_CleanData(t *testing.T) {
	gateway := NewGateway(model.QualityThresholds{MinNCount: 5, MaxMissingRatio: 0.2})
	table := mustTable(t, []string{"a", "b"},
		[]Cell{Value(1), Value(2)},
		[]Cell{Value(2), Value(3)},
		[]Cell{Value(3), Value(4)},
		[]Cell{Value(4), Value(5)},
		[]Cell{Value(5), Value(1)},
	)

	penalty, checks := gateway.Assess(table, nil)

	if penalty != 0 {
		t.Errorf("expected zero penalty for clean data, got %f", penalty)
	}
	for _, c := range checks {
		if !c.Passed {
			t.Errorf("expected all checks to pass, got %+v", c)
		}
	}
}

func TestAssess_EmptyTableNeverPanics(t *testing.T) {
	gateway := NewGateway(model.DefaultQualityThresholds())
	table := mustTable(t, []string{"col"})

	penalty, checks := gateway.Assess(table, nil)

	if penalty <= 0 || penalty > 1 {
		t.Errorf("expected penalty in (0,1] for empty table, got %f", penalty)
	}
	if len(checks) == 0 {
		t.Error("expected checks for empty table")
	}
}

func TestAssess_PenaltyClampedToOne(t *testing.T) {
	gateway := NewGateway(model.QualityThresholds{MinNCount: 100, MaxMissingRatio: 0.0001})
	// Low n, bad missing ratio, and two unreliable drivers: raw sum > 1
	table := mustTable(t, []string{"q1", "q2", "q3", "q4"},
		[]Cell{Value(1), Value(5), Value(1), Value(5)},
		[]Cell{Value(5), Value(1), Value(5), Value(1)},
		[]Cell{Value(1), Value(5), Value(1), Value(5)},
		[]Cell{Value(5), Value(1), Value(5), Value(1)},
		[]Cell{Value(1), Value(5), Value(1), Value(5)},
		[]Cell{Null(), Value(1), Value(5), Value(1)},
	)
	drivers := []model.DriverConfig{
		{ID: "d1", Label: "One", SurveyItems: []string{"q1", "q2"}},
		{ID: "d2", Label: "Two", SurveyItems: []string{"q3", "q4"}},
		{ID: "d3", Label: "Three", SurveyItems: []string{"q1", "q4"}},
		{ID: "d4", Label: "Four", SurveyItems: []string{"q2", "q3"}},
	}

	// Raw sum is 0.4 + 0.3 + 4*0.1 = 1.1
	penalty, _ := gateway.Assess(table, drivers)

	if penalty != 1.0 {
		t.Errorf("penalty must be clamped to 1.0, got %f", penalty)
	}
}

func TestAssess_AlphaLowConsistency(t *testing.T) {
	gateway := NewGateway(model.QualityThresholds{MinNCount: 3, MaxMissingRatio: 0.9})
	// Anti-correlated items: alpha is far below 0.7
	table := mustTable(t, []string{"q1", "q2"},
		[]Cell{Value(1), Value(5)},
		[]Cell{Value(2), Value(4)},
		[]Cell{Value(5), Value(1)},
		[]Cell{Value(4), Value(2)},
		[]Cell{Value(1), Value(5)},
	)
	drivers := []model.DriverConfig{{ID: "d1", Label: "Safety", SurveyItems: []string{"q1", "q2"}}}

	penalty, checks := gateway.Assess(table, drivers)

	check, ok := findCheck(checks, "Reliability (Safety)")
	if !ok {
		t.Fatal("expected a reliability check")
	}
	if check.Passed || check.Severity != model.SeverityWarn {
		t.Errorf("expected failing warn check, got %+v", check)
	}
	if penalty < 0.1 {
		t.Errorf("expected penalty >= 0.1, got %f", penalty)
	}
}

func TestAssess_AlphaHighConsistency(t *testing.T) {
	gateway := NewGateway(model.QualityThresholds{MinNCount: 3, MaxMissingRatio: 0.9})
	// Strongly correlated items: alpha close to 1
	table := mustTable(t, []string{"q1", "q2"},
		[]Cell{Value(1), Value(1)},
		[]Cell{Value(2), Value(2)},
		[]Cell{Value(3), Value(3)},
		[]Cell{Value(4), Value(4)},
		[]Cell{Value(5), Value(5)},
	)
	drivers := []model.DriverConfig{{ID: "d1", Label: "Safety", SurveyItems: []string{"q1", "q2"}}}

	_, checks := gateway.Assess(table, drivers)

	check, ok := findCheck(checks, "Reliability (Safety)")
	if !ok {
		t.Fatal("expected a reliability check")
	}
	if !check.Passed {
		t.Errorf("expected passing check for correlated items, got %+v", check)
	}
}

func TestAssess_AlphaSkippedOnInsufficientData(t *testing.T) {
	gateway := NewGateway(model.QualityThresholds{MinNCount: 1, MaxMissingRatio: 0.9})

	// Single-item driver: skipped
	table := mustTable(t, []string{"q1"},
		[]Cell{Value(1)}, []Cell{Value(2)}, []Cell{Value(3)}, []Cell{Value(4)}, []Cell{Value(5)},
	)
	oneItem := []model.DriverConfig{{ID: "d1", Label: "Solo", SurveyItems: []string{"q1"}}}
	_, checks := gateway.Assess(table, oneItem)
	if _, found := findCheck(checks, "Reliability (Solo)"); found {
		t.Error("driver with <2 items must be skipped, not checked")
	}

	// Fewer than 5 complete rows: skipped
	table2 := mustTable(t, []string{"q1", "q2"},
		[]Cell{Value(1), Value(2)},
		[]Cell{Value(2), Null()},
		[]Cell{Value(3), Value(3)},
		[]Cell{Value(4), Null()},
		[]Cell{Value(5), Value(5)},
	)
	twoItems := []model.DriverConfig{{ID: "d2", Label: "Pair", SurveyItems: []string{"q1", "q2"}}}
	_, checks2 := gateway.Assess(table2, twoItems)
	if _, found := findCheck(checks2, "Reliability (Pair)"); found {
		t.Error("driver with <5 complete rows must be skipped")
	}
}

func TestCronbachAlpha_KnownValue(t *testing.T) {
	// Two identical items: var_total = 4*var_item, so
	// alpha = 2 * (1 - 2v/4v) = 1.0
	items := [][]float64{
		{1, 2, 3, 4, 5},
		{1, 2, 3, 4, 5},
	}
	alpha := cronbachAlpha(items)
	if math.Abs(alpha-1.0) > 1e-9 {
		t.Errorf("expected alpha 1.0 for duplicated item, got %f", alpha)
	}
}

func TestCronbachAlpha_ZeroTotalVariance(t *testing.T) {
	// Row sums are constant: total variance 0 must yield alpha 0, not NaN
	items := [][]float64{
		{1, 2, 3},
		{3, 2, 1},
	}
	alpha := cronbachAlpha(items)
	if alpha != 0 {
		t.Errorf("expected alpha 0 for zero total variance, got %f", alpha)
	}
}

func TestAssessSeries(t *testing.T) {
	gateway := NewGateway(model.DefaultQualityThresholds())

	penalty, checks := gateway.AssessSeries(nil)
	if penalty != 1.0 {
		t.Errorf("expected maximal penalty for empty series, got %f", penalty)
	}
	if len(checks) != 1 || checks[0].Severity != model.SeverityFail {
		t.Errorf("expected a single fail check, got %+v", checks)
	}

	penalty, checks = gateway.AssessSeries([]float64{1, 2, 3})
	if penalty != 0 || len(checks) != 0 {
		t.Errorf("expected clean result for non-empty series, got %f / %+v", penalty, checks)
	}
}

func TestSampleVariance(t *testing.T) {
	// var({1,2,3,4,5}) with n-1 denominator = 2.5
	got := sampleVariance([]float64{1, 2, 3, 4, 5})
	if math.Abs(got-2.5) > 1e-9 {
		t.Errorf("expected 2.5, got %f", got)
	}
	if sampleVariance([]float64{7}) != 0 {
		t.Error("single sample variance must be 0")
	}
}
