package loader

import (
	"strings"
	"testing"
)

func TestReadTable_DropsIdentifierColumns(t *testing.T) {
	table, err := ReadTable(strings.NewReader(SurveyTemplateCSV))
	if err != nil {
		t.Fatal(err)
	}

	if table.HasColumn("employee_id") {
		t.Error("identifier column should be dropped")
	}
	want := []string{"Q1", "Q2", "Q3", "Q4", "Q5"}
	got := table.Columns()
	if len(got) != len(want) {
		t.Fatalf("expected %d columns, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if table.Rows() != 2 {
		t.Errorf("expected 2 rows, got %d", table.Rows())
	}
	col, _ := table.Column("Q1")
	if col[0].Null || col[0].Value != 4 {
		t.Errorf("unexpected first cell: %+v", col[0])
	}
}

func TestReadTable_NullMarkers(t *testing.T) {
	csv := "Q1,Q2\n1,\n2,NA\n3,n/a\n4,NaN\n5,2.5\n"
	table, err := ReadTable(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}

	if table.Rows() != 5 {
		t.Fatalf("expected 5 rows, got %d", table.Rows())
	}
	col, ok := table.Column("Q2")
	if !ok {
		t.Fatal("Q2 missing")
	}
	for i := 0; i < 4; i++ {
		if !col[i].Null {
			t.Errorf("row %d: expected null", i)
		}
	}
	if col[4].Null || col[4].Value != 2.5 {
		t.Errorf("unexpected last cell: %+v", col[4])
	}
	if table.NullCount() != 4 {
		t.Errorf("expected 4 nulls, got %d", table.NullCount())
	}
}

func TestReadTable_NoNumericColumns(t *testing.T) {
	if _, err := ReadTable(strings.NewReader("name\nalice\nbob\n")); err == nil {
		t.Error("expected error for table without numeric columns")
	}
}

func TestReadTable_Empty(t *testing.T) {
	if _, err := ReadTable(strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestReadTable_HeaderOnly(t *testing.T) {
	table, err := ReadTable(strings.NewReader("Q1,Q2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if table.Rows() != 0 {
		t.Errorf("expected empty table, got %d rows", table.Rows())
	}
}
