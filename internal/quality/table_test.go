package quality

import "testing"

func TestNewTable_RejectsBadColumns(t *testing.T) {
	if _, err := NewTable([]string{"a", "a"}); err == nil {
		t.Error("expected error for duplicate column")
	}
	if _, err := NewTable([]string{"a", ""}); err == nil {
		t.Error("expected error for empty column name")
	}
}

func TestTable_AppendRowShapeCheck(t *testing.T) {
	table, err := NewTable([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if err := table.AppendRow([]Cell{Value(1)}); err == nil {
		t.Error("expected error for ragged row")
	}
	if err := table.AppendRow([]Cell{Value(1), Null()}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if table.Rows() != 1 {
		t.Errorf("expected 1 row, got %d", table.Rows())
	}
	if table.NullCount() != 1 {
		t.Errorf("expected 1 null, got %d", table.NullCount())
	}
}

func TestTable_CompleteRows(t *testing.T) {
	table := mustTable(t, []string{"a", "b", "c"},
		[]Cell{Value(1), Value(10), Null()},
		[]Cell{Value(2), Null(), Value(20)},
		[]Cell{Value(3), Value(30), Value(40)},
	)

	complete := table.CompleteRows([]string{"a", "b"})
	if len(complete) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(complete))
	}
	// Row 2 drops out: b is null there
	if len(complete[0]) != 2 || complete[0][0] != 1 || complete[0][1] != 3 {
		t.Errorf("unexpected column a: %v", complete[0])
	}
	if complete[1][0] != 10 || complete[1][1] != 30 {
		t.Errorf("unexpected column b: %v", complete[1])
	}

	if got := table.CompleteRows([]string{"a", "zzz"}); got != nil {
		t.Errorf("expected nil for unknown column, got %v", got)
	}
}

func TestTable_NilSafety(t *testing.T) {
	var table *Table
	if table.Rows() != 0 || table.Size() != 0 || table.NullCount() != 0 {
		t.Error("nil table accessors must return zero values")
	}
	if table.HasColumn("x") {
		t.Error("nil table has no columns")
	}
}
