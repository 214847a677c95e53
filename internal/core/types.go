package core

import "strings"

// Dataset table names. Each must have a registered TableSpec before Load.
const (
	TableProviders = "providers"
	TableReceivers = "receivers"
	TableClaims    = "claims"
	TableListings  = "listings"
)

// Derived view names.
const (
	ViewListingsWithProvider = "listings_with_provider"
	ViewClaimsDetail         = "claims_detail"
)

// FieldType represents the expected data type for a dataset column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
)

// FieldSpec defines validation rules for a single dataset column.
type FieldSpec struct {
	Name        string              // Column header name (matched case-insensitively)
	Type        FieldType           // Expected data type
	Required    bool                // Column must exist in the header
	NonNegative bool                // Numeric values below zero are rejected
	Normalizer  func(string) string // Optional transformation function
}

// TableSpec describes one input dataset.
type TableSpec struct {
	Name       string // Dataset name: "providers"
	Label      string // Display name: "Providers"
	Key        string // Column expected to be unique, if any
	FieldSpecs []FieldSpec
}

// Spec returns the field spec for a column, matched case-insensitively.
func (t TableSpec) Spec(column string) (FieldSpec, bool) {
	for _, fs := range t.FieldSpecs {
		if strings.EqualFold(fs.Name, column) {
			return fs, true
		}
	}
	return FieldSpec{}, false
}

// HeaderIndex maps column names (lowercase) to their position in a raw row.
type HeaderIndex map[string]int

// Inputs are the tables a report producer may read.
// All tables are treated as read-only.
type Inputs struct {
	Providers            *Table
	Receivers            *Table
	Claims               *Table
	Listings             *Table
	ListingsWithProvider *Table
	ClaimsDetail         *Table
}

// ProduceFunc computes one report from its inputs.
// Implementations must be pure: same inputs, same output.
type ProduceFunc func(in Inputs) (*Table, error)

// ReportDefinition is one entry of the report catalog.
type ReportDefinition struct {
	Number  int         `json:"number"` // Position in the catalog, starting at 1
	Key     string      `json:"key"`    // URL-safe identifier: "providers-by-type"
	Name    string      `json:"name"`   // Stable label: "Providers by Type"
	Title   string      `json:"title"`  // Dashboard heading
	Produce ProduceFunc `json:"-"`
}
