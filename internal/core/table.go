package core

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Row is one record of a Table, positionally aligned with Table.Columns.
// Rows are shared between tables and must never be modified in place.
type Row []Value

// Table is an ordered sequence of homogeneous rows.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(name string, columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Name: name, Columns: cols, Rows: []Row{}}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the position of a column.
// Column names match exactly first, then case-insensitively.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	for i, c := range t.Columns {
		if strings.EqualFold(c, name) {
			return i, nil
		}
	}
	return -1, &MissingColumnError{Table: t.Name, Column: name}
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	_, err := t.ColumnIndex(name)
	return err == nil
}

// Column returns every value of one column in row order.
func (t *Table) Column(name string) ([]Value, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// withRows returns a table with the same name and columns and the given rows.
func (t *Table) withRows(rows []Row) *Table {
	if rows == nil {
		rows = []Row{}
	}
	return &Table{Name: t.Name, Columns: t.Columns, Rows: rows}
}

// Records returns the table as a slice of column-name keyed maps.
// Useful for rendering layers that prefer keyed access.
func (t *Table) Records() []map[string]Value {
	out := make([]map[string]Value, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]Value, len(t.Columns))
		for j, c := range t.Columns {
			rec[c] = row[j]
		}
		out[i] = rec
	}
	return out
}

// tableJSON is the wire form of a Table.
type tableJSON struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// MarshalJSON encodes the table as {"name", "columns", "rows"}.
func (t *Table) MarshalJSON() ([]byte, error) {
	rows := t.Rows
	if rows == nil {
		rows = []Row{}
	}
	return json.Marshal(tableJSON{Name: t.Name, Columns: t.Columns, Rows: rows})
}

// WriteCSV writes the header and all rows. Null cells are written empty.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, v := range row {
			record[j] = v.String()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
