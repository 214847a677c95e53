package core

import (
	"errors"
	"fmt"
)

// ErrUnknownReport is returned when a report key is not in the catalog.
var ErrUnknownReport = errors.New("unknown report")

// ErrUnknownFilterField is returned when a filter names a field that the
// filter engine does not recognize.
var ErrUnknownFilterField = errors.New("unknown filter field")

// ErrDuplicateFilterField is returned when one filter field is selected more
// than once, for example under two spellings.
var ErrDuplicateFilterField = errors.New("duplicate filter field")

// LoadError reports that a dataset source could not be read or parsed.
type LoadError struct {
	Table  string // Dataset name
	Source string // Path or description of the source, if known
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("load %s from %s: %v", e.Table, e.Source, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Table, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MissingColumnError reports that an expected column is absent from a table.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("missing required column %q", e.Column)
	}
	return fmt.Sprintf("table %s: missing required column %q", e.Table, e.Column)
}

// DuplicateKeyError reports that a key assumed unique appears more than once.
type DuplicateKeyError struct {
	Table  string
	Column string
	Value  string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("table %s: duplicate key %s=%q", e.Table, e.Column, e.Value)
}
