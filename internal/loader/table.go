package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okazmin/kompas/internal/quality"
)

// nullMarkers are cell values treated as missing, matching common CSV
// conventions for absent observations.
var nullMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
}

func isNullMarker(s string) bool {
	return nullMarkers[strings.ToLower(strings.TrimSpace(s))]
}

// LoadTable reads a CSV file into a numeric table. Identifier columns
// (any column containing a non-numeric, non-null value) are dropped, so
// survey files can carry employee ids alongside the item columns.
func LoadTable(path string) (*quality.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()
	return ReadTable(f)
}

// ReadTable parses CSV data with a header row into a numeric table.
func ReadTable(r io.Reader) (*quality.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}

	header := records[0]
	rows := records[1:]

	// First pass: find the numeric columns
	numeric := make([]bool, len(header))
	for j := range header {
		numeric[j] = true
		for _, row := range rows {
			if j >= len(row) || isNullMarker(row[j]) {
				continue
			}
			if _, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64); err != nil {
				numeric[j] = false
				break
			}
		}
	}

	var names []string
	for j, name := range header {
		if numeric[j] {
			names = append(names, strings.TrimSpace(name))
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("csv has no numeric columns")
	}

	table, err := quality.NewTable(names)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		cells := make([]quality.Cell, 0, len(names))
		for j := range header {
			if !numeric[j] {
				continue
			}
			if j >= len(row) || isNullMarker(row[j]) {
				cells = append(cells, quality.Null())
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse cell %q: %w", row[j], err)
			}
			cells = append(cells, quality.Value(v))
		}
		if err := table.AppendRow(cells); err != nil {
			return nil, err
		}
	}
	return table, nil
}
