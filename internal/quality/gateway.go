// Package quality converts statistical weaknesses in evidence data into a
// numeric confidence penalty with transparent per-check diagnostics.
package quality

import (
	"fmt"

	"github.com/okazmin/kompas/internal/model"
)

// Penalty terms per failing check. The final penalty is clamped to [0,1].
const (
	penaltySampleSize   = 0.4
	penaltyMissingRatio = 0.3
	penaltyLowAlpha     = 0.1
)

// minAlphaRows is the minimum number of complete rows needed before
// Cronbach's alpha is considered computable for a driver.
const minAlphaRows = 5

// Gateway runs data-quality checks against survey tables and KPI series
type Gateway struct {
	thresholds model.QualityThresholds
}

// NewGateway creates a gateway with the given thresholds
func NewGateway(thresholds model.QualityThresholds) *Gateway {
	if thresholds.MinAlpha == 0 {
		thresholds.MinAlpha = model.DefaultQualityThresholds().MinAlpha
	}
	return &Gateway{thresholds: thresholds}
}

// Assess runs all survey checks and returns the clamped confidence penalty
// plus one diagnostic per check. Degenerate input never panics: an empty
// table simply fails the sample-size and missing-ratio checks.
func (g *Gateway) Assess(table *Table, drivers []model.DriverConfig) (float64, []model.QualityCheckResult) {
	var checks []model.QualityCheckResult
	penalty := 0.0

	// Check 1: sample size
	n := table.Rows()
	if n < g.thresholds.MinNCount {
		checks = append(checks, model.QualityCheckResult{
			Name:     "Sample Size",
			Passed:   false,
			Severity: model.SeverityWarn,
			Message:  fmt.Sprintf("Sample size n=%d is below threshold (%d). Results are unstable.", n, g.thresholds.MinNCount),
			Details:  map[string]interface{}{"n": n, "threshold": g.thresholds.MinNCount},
		})
		penalty += penaltySampleSize
	} else {
		checks = append(checks, model.QualityCheckResult{
			Name:     "Sample Size",
			Passed:   true,
			Severity: model.SeverityPass,
			Message:  fmt.Sprintf("n=%d OK", n),
			Details:  map[string]interface{}{"n": n},
		})
	}

	// Check 2: overall missing ratio
	missingRatio := 1.0
	if table.Size() > 0 {
		missingRatio = float64(table.NullCount()) / float64(table.Size())
	}
	if missingRatio > g.thresholds.MaxMissingRatio {
		checks = append(checks, model.QualityCheckResult{
			Name:     "Missing Ratio",
			Passed:   false,
			Severity: model.SeverityWarn,
			Message:  fmt.Sprintf("Missing data ratio %.1f%% exceeds threshold (%.1f%%).", missingRatio*100, g.thresholds.MaxMissingRatio*100),
			Details:  map[string]interface{}{"missing_ratio": missingRatio},
		})
		penalty += penaltyMissingRatio
	} else {
		checks = append(checks, model.QualityCheckResult{
			Name:     "Missing Ratio",
			Passed:   true,
			Severity: model.SeverityPass,
			Message:  fmt.Sprintf("Missing %.1f%% OK", missingRatio*100),
			Details:  map[string]interface{}{"missing_ratio": missingRatio},
		})
	}

	// Check 3: internal consistency per driver
	for _, driver := range drivers {
		items := presentColumns(table, driver.SurveyItems)
		if len(items) < 2 {
			// Consistency needs at least two items; not a failure
			continue
		}
		complete := table.CompleteRows(items)
		if len(complete) == 0 || len(complete[0]) < minAlphaRows {
			// Too few usable rows to estimate alpha reliably
			continue
		}
		alpha := cronbachAlpha(complete)
		if alpha < g.thresholds.MinAlpha {
			checks = append(checks, model.QualityCheckResult{
				Name:     fmt.Sprintf("Reliability (%s)", driver.Label),
				Passed:   false,
				Severity: model.SeverityWarn,
				Message:  fmt.Sprintf("Cronbach's alpha %.2f < %.2f for %q (inconsistent responses).", alpha, g.thresholds.MinAlpha, driver.Label),
				Details:  map[string]interface{}{"alpha": alpha, "driver": driver.ID},
			})
			penalty += penaltyLowAlpha
		} else {
			checks = append(checks, model.QualityCheckResult{
				Name:     fmt.Sprintf("Reliability (%s)", driver.Label),
				Passed:   true,
				Severity: model.SeverityPass,
				Message:  fmt.Sprintf("Alpha %.2f OK", alpha),
				Details:  map[string]interface{}{"alpha": alpha, "driver": driver.ID},
			})
		}
	}

	return clamp01(penalty), checks
}

// AssessSeries sanity-checks a single KPI series. An empty series is
// unusable and yields the maximal penalty.
func (g *Gateway) AssessSeries(values []float64) (float64, []model.QualityCheckResult) {
	if len(values) == 0 {
		return 1.0, []model.QualityCheckResult{{
			Name:     "KPI Data",
			Passed:   false,
			Severity: model.SeverityFail,
			Message:  "No data provided",
		}}
	}
	return 0.0, nil
}

// cronbachAlpha computes alpha = (k/(k-1)) * (1 - sum(var_i)/var_total)
// over column-major complete data. Zero total-score variance yields 0.
func cronbachAlpha(items [][]float64) float64 {
	k := len(items)
	if k < 2 {
		return 0
	}

	sumItemVar := 0.0
	for _, item := range items {
		sumItemVar += sampleVariance(item)
	}

	n := len(items[0])
	totals := make([]float64, n)
	for _, item := range items {
		for row, v := range item {
			totals[row] += v
		}
	}
	totalVar := sampleVariance(totals)
	if totalVar == 0 {
		return 0
	}

	return (float64(k) / float64(k-1)) * (1 - sumItemVar/totalVar)
}

// sampleVariance is Bessel-corrected (denominator n-1)
func sampleVariance(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return ss / float64(n-1)
}

func presentColumns(table *Table, names []string) []string {
	var present []string
	for _, name := range names {
		if table.HasColumn(name) {
			present = append(present, name)
		}
	}
	return present
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
