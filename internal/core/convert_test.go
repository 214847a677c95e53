package core

import (
	"testing"
)

// ----------------------------------------------------------------------------
// ToPgNumeric Tests
// ----------------------------------------------------------------------------

func TestToPgNumeric(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
	}{
		// Valid: Basic numbers
		{name: "positive integer", input: "123", wantValid: true},
		{name: "zero", input: "0", wantValid: true},
		{name: "negative integer", input: "-456", wantValid: true},
		{name: "decimal number", input: "123.45", wantValid: true},
		{name: "leading decimal point", input: ".99", wantValid: true},
		{name: "trailing decimal point", input: "99.", wantValid: true},
		{name: "explicit positive sign", input: "+123", wantValid: true},

		// Valid: Spreadsheet formatting
		{name: "dollar sign", input: "$1,234.56", wantValid: true},
		{name: "euro sign", input: "\u20ac1234.56", wantValid: true},
		{name: "rupee sign", input: "\u20b9250", wantValid: true},
		{name: "thousands separator", input: "1,234,567.89", wantValid: true},
		{name: "accounting negative parentheses", input: "(123.45)", wantValid: true},
		{name: "accounting negative with spaces", input: "( 999.99 )", wantValid: true},
		{name: "surrounded by whitespace", input: "  123.45  ", wantValid: true},

		// Invalid
		{name: "scientific notation not supported", input: "1.5e10", wantValid: false},
		{name: "empty string", input: "", wantValid: false},
		{name: "only whitespace", input: "   ", wantValid: false},
		{name: "alphabetic string", input: "abc", wantValid: false},
		{name: "mixed alphanumeric", input: "12abc34", wantValid: false},
		{name: "only currency symbol", input: "$", wantValid: false},
		{name: "multiple decimal points", input: "12.34.56", wantValid: false},
		{name: "double negative", input: "--123", wantValid: false},
		{name: "negative after number", input: "123-", wantValid: false},
		{name: "NaN", input: "NaN", wantValid: false},
		{name: "Infinity", input: "Infinity", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToPgNumeric(tt.input)

			if result.Valid != tt.wantValid {
				t.Errorf("ToPgNumeric(%q).Valid = %v, want %v",
					tt.input, result.Valid, tt.wantValid)
				return
			}

			if tt.wantValid {
				f, err := result.Float64Value()
				if err != nil {
					t.Errorf("ToPgNumeric(%q) Float64Value error: %v", tt.input, err)
				}
				if !f.Valid {
					t.Errorf("ToPgNumeric(%q) Float64Value returned invalid", tt.input)
				}
			}
		})
	}
}

// ----------------------------------------------------------------------------
// NumericValue Tests
// ----------------------------------------------------------------------------

func TestNumericValue(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Value
		wantOK bool
	}{
		{name: "integer", input: "25", want: Int(25), wantOK: true},
		{name: "whole decimal becomes int", input: "25.0", want: Int(25), wantOK: true},
		{name: "fraction stays float", input: "2.5", want: Float(2.5), wantOK: true},
		{name: "thousands separator", input: "1,200", want: Int(1200), wantOK: true},
		{name: "accounting negative", input: "(3)", want: Int(-3), wantOK: true},
		{name: "empty is null", input: "", want: Null(), wantOK: true},
		{name: "blank is null", input: "  ", want: Null(), wantOK: true},
		{name: "garbage", input: "lots", want: Null(), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NumericValue(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("NumericValue(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("NumericValue(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ToPgText / TextValue Tests
// ----------------------------------------------------------------------------

func TestToPgText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantStr   string
	}{
		{name: "simple string", input: "hello", wantValid: true, wantStr: "hello"},
		{name: "trimmed", input: "  New Delhi ", wantValid: true, wantStr: "New Delhi"},
		{name: "empty", input: "", wantValid: false},
		{name: "whitespace only", input: " \t ", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPgText(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ToPgText(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if got.String != tt.wantStr {
				t.Errorf("ToPgText(%q) = %q, want %q", tt.input, got.String, tt.wantStr)
			}
		})
	}
}

func TestTextValue(t *testing.T) {
	if v := TextValue("Vegan"); v != Text("Vegan") {
		t.Errorf("TextValue(Vegan) = %#v", v)
	}
	if v := TextValue(""); !v.IsNull() {
		t.Errorf("TextValue(\"\") = %#v, want null", v)
	}
}

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Basic cleaning
		{name: "simple string unchanged", input: "hello", want: "hello"},
		{name: "empty string", input: "", want: ""},
		{name: "surrounded by whitespace", input: "  hello  ", want: "hello"},

		// Excel formula prefix handling
		{name: "Excel formula with quotes", input: `="hello"`, want: "hello"},
		{name: "Excel formula number as text", input: `="12345"`, want: "12345"},
		{name: "bare equals sign", input: "=SUM(A1)", want: "SUM(A1)"},

		// Quote handling
		{name: "double quotes removed", input: `"hello"`, want: "hello"},
		{name: "single quotes removed", input: "'hello'", want: "hello"},
		{name: "leading single quote (Excel text prefix)", input: "'12345", want: "12345"},
		{name: "inner apostrophe kept", input: "'Amma's Kitchen'", want: "Amma's Kitchen"},
		{name: "trailing apostrophe kept", input: "Jones'", want: "Jones'"},
		{name: "only one pair removed", input: `"'quoted'"`, want: "'quoted'"},
		{name: "unbalanced double quote kept", input: `12" pizza`, want: `12" pizza`},

		// Combined cleaning
		{name: "excel formula with whitespace", input: `  ="test"  `, want: "test"},

		// Unicode normalization
		{name: "decomposed accent composed", input: "Cafe\u0301", want: "Caf\u00e9"},
		{name: "composed accent unchanged", input: "Caf\u00e9", want: "Caf\u00e9"},

		// Edge cases
		{name: "only quotes", input: `""`, want: ""},
		{name: "equals with quoted number", input: `="0"`, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanCell(tt.input)
			if got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// MakeHeaderIndex Tests
// ----------------------------------------------------------------------------

func TestMakeHeaderIndex(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		checks map[string]int // key -> expected index
	}{
		{
			name:   "simple headers",
			header: []string{"Provider_ID", "Name", "City"},
			checks: map[string]int{"provider_id": 0, "name": 1, "city": 2},
		},
		{
			name:   "case insensitive lookup",
			header: []string{"PROVIDER_ID", "name", "cItY"},
			checks: map[string]int{"provider_id": 0, "name": 1, "city": 2},
		},
		{
			name:   "headers with quotes and whitespace cleaned",
			header: []string{`"Food_ID"`, "  Quantity "},
			checks: map[string]int{"food_id": 0, "quantity": 1},
		},
		{
			name:   "headers with Excel formula",
			header: []string{`="Location"`},
			checks: map[string]int{"location": 0},
		},
		{
			name:   "empty header",
			header: []string{},
			checks: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := MakeHeaderIndex(tt.header)

			if len(idx) != len(tt.checks) {
				t.Errorf("MakeHeaderIndex(%v) has %d keys, want %d", tt.header, len(idx), len(tt.checks))
			}
			for key, wantPos := range tt.checks {
				gotPos, ok := idx[key]
				if !ok {
					t.Errorf("MakeHeaderIndex(%v)[%q] not found, want index %d",
						tt.header, key, wantPos)
					continue
				}
				if gotPos != wantPos {
					t.Errorf("MakeHeaderIndex(%v)[%q] = %d, want %d",
						tt.header, key, gotPos, wantPos)
				}
			}
		})
	}
}

// TestMakeHeaderIndex_DuplicateHeaders verifies the first occurrence wins.
func TestMakeHeaderIndex_DuplicateHeaders(t *testing.T) {
	header := []string{"Name", "City", "Name"}
	idx := MakeHeaderIndex(header)

	if gotPos, ok := idx["name"]; !ok || gotPos != 0 {
		t.Errorf("MakeHeaderIndex with duplicates: name index = %d, want 0", gotPos)
	}
}
