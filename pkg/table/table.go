// Package table holds the in-memory tabular representation shared by the
// source readers, the validation engine and the reconciliation checks.
// Cells are kept as raw strings exactly as the reader produced them; an
// empty string stands for an absent value.
package table

import "fmt"

// Table is a read-only, column-named grid of string cells.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a Table from a header and rows. Every row must have exactly
// one cell per column; column names must be unique.
func New(columns []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("table: duplicate column %q", name)
		}
		index[name] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("table: row %d has %d cells, want %d", i, len(row), len(columns))
		}
	}
	return &Table{columns: columns, index: index, rows: rows}, nil
}

// Columns returns the column names in source order.
func (t *Table) Columns() []string { return t.columns }

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return len(t.rows) }

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Cell returns the raw value at (row, column name). A column the table does
// not have reads as the empty string, mirroring how an absent field is
// represented everywhere else.
func (t *Table) Cell(row int, column string) string {
	col, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return ""
	}
	return t.rows[row][col]
}

// Row returns the raw cells of one row in column order.
func (t *Table) Row(row int) []string {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	return t.rows[row]
}

// Column returns all values of the named column in row order.
func (t *Table) Column(name string) ([]string, error) {
	col, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("table: no column %q", name)
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[col]
	}
	return out, nil
}
