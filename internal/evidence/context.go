// Package evidence builds the flat evidence context consumed by rule
// conditions: driver scores aggregated from survey tables and latest KPI
// values.
package evidence

import (
	"github.com/okazmin/kompas/internal/model"
	"github.com/okazmin/kompas/internal/quality"
)

// DriverScores aggregates survey items into one score per driver: the mean
// of each respondent's item average. Rows missing some items still count
// through their remaining items; drivers with no mapped columns are omitted.
func DriverScores(table *quality.Table, drivers []model.DriverConfig) map[string]float64 {
	scores := make(map[string]float64)
	if table == nil {
		return scores
	}

	for _, driver := range drivers {
		var cols [][]quality.Cell
		for _, item := range driver.SurveyItems {
			if col, ok := table.Column(item); ok {
				cols = append(cols, col)
			}
		}
		if len(cols) == 0 {
			continue
		}

		rowMeanSum := 0.0
		rowsCounted := 0
		for row := 0; row < table.Rows(); row++ {
			sum := 0.0
			present := 0
			for _, col := range cols {
				if !col[row].Null {
					sum += col[row].Value
					present++
				}
			}
			if present == 0 {
				continue
			}
			rowMeanSum += sum / float64(present)
			rowsCounted++
		}
		if rowsCounted == 0 {
			scores[driver.ID] = 0
			continue
		}
		scores[driver.ID] = rowMeanSum / float64(rowsCounted)
	}
	return scores
}

// KPILatest returns the last non-null value of the named column. The table
// is assumed ordered by time, so the last row is the current reading.
func KPILatest(table *quality.Table, name string) (float64, bool) {
	col, ok := table.Column(name)
	if !ok {
		return 0, false
	}
	for i := len(col) - 1; i >= 0; i-- {
		if !col[i].Null {
			return col[i].Value, true
		}
	}
	return 0, false
}

// BuildContext merges driver scores and the latest reading of every KPI
// column into one variable mapping. KPI columns shadow driver ids on
// collision, matching their later assignment.
func BuildContext(survey, kpis *quality.Table, drivers []model.DriverConfig) map[string]float64 {
	ctx := DriverScores(survey, drivers)
	if kpis != nil {
		for _, name := range kpis.Columns() {
			if value, ok := KPILatest(kpis, name); ok {
				ctx[name] = value
			}
		}
	}
	return ctx
}
