// Package sheet holds the tabular model the pipeline works on: named
// columns over rows of string cells, read from and written to xlsx
// workbooks. An empty cell is a missing value.
package sheet

import (
	"fmt"

	"github.com/pkg/errors"
)

// Table is a rectangular grid with named columns. Every row always has
// len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns an empty table with the given header.
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// FromRows builds a table from a raw grid, using rows[headerRow] as the
// header. Rows above the header are discarded, blank data rows are
// skipped, blank header cells are named "Unnamed: <i>" and repeated
// names get ".1", ".2" suffixes so every column name is unique.
func FromRows(rows [][]string, headerRow int) *Table {
	t := &Table{}
	if headerRow < 0 || headerRow >= len(rows) {
		return t
	}

	width := len(rows[headerRow])
	for _, r := range rows[headerRow+1:] {
		if len(r) > width {
			width = len(r)
		}
	}

	header := make([]string, width)
	copy(header, rows[headerRow])
	t.Columns = uniqueNames(header)

	for _, r := range rows[headerRow+1:] {
		if isBlank(r) {
			continue
		}
		row := make([]string, width)
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}

	return t
}

func uniqueNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, name := range header {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			base := name
			for {
				n++
				name = fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Cell returns the value at row i of the named column; missing columns
// and out of range rows read as empty.
func (t *Table) Cell(i int, name string) string {
	col := t.Index(name)
	if col < 0 || i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.Rows[i][col]
}

// Set stores v at row i of the named column.
func (t *Table) Set(i int, name, v string) error {
	col := t.Index(name)
	if col < 0 {
		return errors.Errorf("no column %q", name)
	}
	if i < 0 || i >= len(t.Rows) {
		return errors.Errorf("row %d out of range [0,%d)", i, len(t.Rows))
	}
	t.Rows[i][col] = v
	return nil
}

// Column returns a copy of the named column's values.
func (t *Table) Column(name string) ([]string, bool) {
	col := t.Index(name)
	if col < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[col]
	}
	return out, true
}

// InsertColumn adds an empty column named name at position at, shifting
// the columns from at onwards one place to the right.
func (t *Table) InsertColumn(at int, name string) error {
	if at < 0 || at > len(t.Columns) {
		return errors.Errorf("insert position %d out of range [0,%d]", at, len(t.Columns))
	}
	if t.Has(name) {
		return errors.Errorf("column %q already exists", name)
	}
	t.Columns = insertAt(t.Columns, at, name)
	for i, r := range t.Rows {
		t.Rows[i] = insertAt(r, at, "")
	}
	return nil
}

func insertAt(s []string, at int, v string) []string {
	s = append(s, "")
	copy(s[at+1:], s[at:])
	s[at] = v
	return s
}

// Grow appends n empty rows.
func (t *Table) Grow(n int) {
	for ; n > 0; n-- {
		t.Rows = append(t.Rows, make([]string, len(t.Columns)))
	}
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := New(t.Columns...)
	c.Rows = make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		c.Rows[i] = append([]string(nil), r...)
	}
	return c
}
