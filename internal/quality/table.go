package quality

import "fmt"

// Cell is one table value with an explicit missing marker
type Cell struct {
	Value float64
	Null  bool
}

// Null returns a missing cell
func Null() Cell {
	return Cell{Null: true}
}

// Value returns a present cell
func Value(v float64) Cell {
	return Cell{Value: v}
}

// Table is a rectangular numeric dataset with named columns and explicit
// null tracking. Storage is column-major since every statistical check reads
// whole columns.
type Table struct {
	names   []string
	index   map[string]int
	columns [][]Cell
	rows    int
}

// NewTable creates an empty table with the given column names
func NewTable(names []string) (*Table, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}
	return &Table{
		names:   append([]string(nil), names...),
		index:   index,
		columns: make([][]Cell, len(names)),
	}, nil
}

// AppendRow adds one row; the cell count must match the column count
func (t *Table) AppendRow(cells []Cell) error {
	if len(cells) != len(t.names) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.names))
	}
	for i, cell := range cells {
		t.columns[i] = append(t.columns[i], cell)
	}
	t.rows++
	return nil
}

// Rows returns the row count
func (t *Table) Rows() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// Columns returns the column names in declared order
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.names...)
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[name]
	return ok
}

// Column returns the named column's cells, or false if absent
func (t *Table) Column(name string) ([]Cell, bool) {
	if t == nil {
		return nil, false
	}
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Size returns the total cell count (rows × columns)
func (t *Table) Size() int {
	if t == nil {
		return 0
	}
	return t.rows * len(t.names)
}

// NullCount returns the number of missing cells across the whole table
func (t *Table) NullCount() int {
	if t == nil {
		return 0
	}
	count := 0
	for _, col := range t.columns {
		for _, cell := range col {
			if cell.Null {
				count++
			}
		}
	}
	return count
}

// CompleteRows returns, for the given columns, the row-wise values of rows
// with no missing cell in any of those columns. The result is column-major
// and rectangular.
func (t *Table) CompleteRows(names []string) [][]float64 {
	if t == nil || len(names) == 0 {
		return nil
	}
	cols := make([][]Cell, 0, len(names))
	for _, name := range names {
		col, ok := t.Column(name)
		if !ok {
			return nil
		}
		cols = append(cols, col)
	}

	out := make([][]float64, len(names))
	for row := 0; row < t.rows; row++ {
		complete := true
		for _, col := range cols {
			if col[row].Null {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for i, col := range cols {
			out[i] = append(out[i], col[row].Value)
		}
	}
	return out
}
