package core

// validation.go checks raw dataset rows against a TableSpec before they
// become a Table.
//
// Validation happens at two levels:
//  1. Header validation: ensures required columns are present
//  2. Cell conversion: types each cell by its FieldSpec (text or numeric)
//
// Columns that have no FieldSpec are passed through as text. Validation
// errors carry the line number, field name and offending value.

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single invalid cell.
type ValidationError struct {
	Line    int    // 1-indexed line in the source, header is line 1
	Field   string // Column name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s %q: %s", e.Line, e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Message)
}

// ValidateHeaders checks that all required columns exist in the header.
// Returns a HeaderIndex, or one MissingColumnError per missing column
// combined with errors.Join.
func ValidateHeaders(table string, header []string, specs []FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(header)
	var errs []error

	for _, spec := range specs {
		if !spec.Required {
			continue
		}
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			errs = append(errs, &MissingColumnError{Table: table, Column: spec.Name})
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return idx, nil
}

// rowConverter converts raw rows of one source into typed Rows.
type rowConverter struct {
	columns []string     // Output column names, in header order
	specs   []*FieldSpec // FieldSpec per header position, nil if untyped
}

// newRowConverter prepares conversion for a validated header. Output column
// names use the FieldSpec spelling when the header matches case-insensitively.
func newRowConverter(header []string, spec TableSpec) *rowConverter {
	rc := &rowConverter{
		columns: make([]string, len(header)),
		specs:   make([]*FieldSpec, len(header)),
	}
	for i, h := range header {
		name := CleanCell(h)
		if fs, ok := spec.Spec(name); ok {
			rc.specs[i] = &fs
			name = fs.Name
		}
		rc.columns[i] = name
	}
	return rc
}

// convert types one raw row. line is used only for error messages.
// Short rows are padded with nulls.
func (rc *rowConverter) convert(raw []string, line int) (Row, error) {
	row := make(Row, len(rc.columns))

	for i := range rc.columns {
		cell := ""
		if i < len(raw) {
			cell = CleanCell(raw[i])
		}

		fs := rc.specs[i]
		if fs != nil && fs.Normalizer != nil && cell != "" {
			cell = fs.Normalizer(cell)
		}

		if fs == nil || fs.Type == FieldText {
			row[i] = TextValue(cell)
			continue
		}

		v, ok := NumericValue(cell)
		if !ok {
			return nil, ValidationError{Line: line, Field: fs.Name, Value: cell, Message: "invalid number format"}
		}
		if f, isNum := v.Float64(); isNum && fs.NonNegative && f < 0 {
			return nil, ValidationError{Line: line, Field: fs.Name, Value: cell, Message: "must not be negative"}
		}
		row[i] = v
	}

	return row, nil
}

// isEmptyRow reports whether every cell in a raw row is blank.
func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
