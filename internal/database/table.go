// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package database

import (
	"github.com/goccy/go-json"
)

// Table is a materialized query result: ordered columns and ordered rows.
// A Table is never modified after it is returned by the executor; derive a
// new one with NewTable instead.
type Table struct {
	Columns []string
	Rows    [][]interface{}
}

// EmptyTable returns a table with zero columns and zero rows.
func EmptyTable() *Table {
	return &Table{Columns: []string{}, Rows: [][]interface{}{}}
}

// NewTable builds a table, copying columns so callers can reuse the slice.
func NewTable(columns []string, rows [][]interface{}) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	if rows == nil {
		rows = [][]interface{}{}
	}
	return &Table{Columns: cols, Rows: rows}
}

// Len returns the row count.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// ColumnIndex returns the position of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at row i in column name. ok is false when either
// is out of range.
func (t *Table) Value(i int, name string) (v interface{}, ok bool) {
	col := t.ColumnIndex(name)
	if col < 0 || i < 0 || i >= len(t.Rows) || col >= len(t.Rows[i]) {
		return nil, false
	}
	return t.Rows[i][col], true
}

// Head returns a table holding at most the first n rows. The row slices
// are shared with t.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n:n]}
}

// Records returns each row as a column-name to value map.
func (t *Table) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]interface{}, len(t.Columns))
		for j, c := range t.Columns {
			if j < len(row) {
				rec[c] = row[j]
			}
		}
		out[i] = rec
	}
	return out
}

// MarshalJSON encodes the table as {"columns": [...], "rows": [[...], ...]}.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Columns []string        `json:"columns"`
		Rows    [][]interface{} `json:"rows"`
	}{Columns: t.Columns, Rows: t.Rows})
}
