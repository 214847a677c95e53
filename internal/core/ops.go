package core

import (
	"fmt"
	"sort"
)

// SortBy returns the rows ordered by column. The sort is stable, so rows
// that compare equal keep their input order. Nulls sort last in both
// directions.
func SortBy(t *Table, column string, desc bool) (*Table, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i][idx], rows[j][idx]
		if a.IsNull() || b.IsNull() {
			return !a.IsNull() && b.IsNull()
		}
		if desc {
			return compareValues(a, b) > 0
		}
		return compareValues(a, b) < 0
	})

	return t.withRows(rows), nil
}

// Limit returns at most the first n rows. A negative n returns every row.
func Limit(t *Table, n int) *Table {
	if n < 0 || n >= len(t.Rows) {
		return t.withRows(append([]Row(nil), t.Rows...))
	}
	return t.withRows(append([]Row(nil), t.Rows[:n]...))
}

// Project returns a table with only the named columns, in the given order.
func Project(t *Table, columns ...string) (*Table, error) {
	idx := make([]int, len(columns))
	names := make([]string, len(columns))
	for i, c := range columns {
		pos, err := t.ColumnIndex(c)
		if err != nil {
			return nil, err
		}
		idx[i] = pos
		names[i] = t.Columns[pos]
	}

	rows := make([]Row, len(t.Rows))
	for r, row := range t.Rows {
		out := make(Row, len(idx))
		for i, pos := range idx {
			out[i] = row[pos]
		}
		rows[r] = out
	}

	return &Table{Name: t.Name, Columns: names, Rows: rows}, nil
}

// Rename returns a table whose columns are renamed by mapping old to new.
// Every old name must exist.
func Rename(t *Table, mapping map[string]string) (*Table, error) {
	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)

	for from, to := range mapping {
		pos, err := t.ColumnIndex(from)
		if err != nil {
			return nil, err
		}
		columns[pos] = to
	}

	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("table %s: rename produces duplicate column %q", t.Name, c)
		}
		seen[c] = true
	}

	return &Table{Name: t.Name, Columns: columns, Rows: t.Rows}, nil
}

// Where returns the rows for which keep returns true, in input order.
func Where(t *Table, keep func(Row) bool) *Table {
	rows := make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	return t.withRows(rows)
}

// Distinct returns the distinct non-null values of column in ascending order.
func Distinct(t *Table, column string) ([]Value, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	seen := make(map[Value]struct{})
	out := []Value{}
	for _, row := range t.Rows {
		v := row[idx]
		if v.IsNull() {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return compareValues(out[i], out[j]) < 0
	})
	return out, nil
}

// Named returns a shallow copy of t with a different name.
func Named(t *Table, name string) *Table {
	return &Table{Name: name, Columns: t.Columns, Rows: t.Rows}
}
