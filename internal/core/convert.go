package core

// convert.go turns raw dataset cells into typed Values.
//
// These functions handle the messy reality of exported spreadsheets:
//   - Thousand separators and currency symbols in numbers
//   - Accounting format negatives "(12)"
//   - Excel formula prefixes (="value")
//   - Mixed Unicode normalization forms in names and cities
//
// The ToPg* helpers return pgtype values with Valid=false for empty or
// invalid input, the same convention the Postgres source uses for NULL.

import (
	"math"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/text/unicode/norm"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ToPgText converts a string to pgtype.Text.
// Returns invalid if the string is empty or only whitespace.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgNumeric converts a string to pgtype.Numeric.
// Handles currency symbols, thousands separators, and accounting format (parentheses for negative).
func ToPgNumeric(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Numeric{Valid: false}
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "\u20ac", "") // Euro
	s = strings.ReplaceAll(s, "\u00a3", "") // Pound
	s = strings.ReplaceAll(s, "\u20b9", "") // Rupee
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}

	return n
}

// NumericValue converts a raw cell to a numeric Value.
// Empty input yields null. Whole numbers become KindInt, everything else
// KindFloat. ok is false if the cell is non-empty but not a number.
func NumericValue(s string) (v Value, ok bool) {
	if strings.TrimSpace(s) == "" {
		return Null(), true
	}

	n := ToPgNumeric(s)
	if !n.Valid {
		return Null(), false
	}

	f8, err := n.Float64Value()
	if err != nil || !f8.Valid || math.IsInf(f8.Float64, 0) {
		return Null(), false
	}

	f := f8.Float64
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return Int(int64(f)), true
	}
	return Float(f), true
}

// TextValue converts a raw cell to a text Value. Empty input yields null.
func TextValue(s string) Value {
	t := ToPgText(s)
	if !t.Valid {
		return Null()
	}
	return Text(t.String)
}

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are lowercased for case-insensitive matching. When a header repeats,
// the first occurrence wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, exists := idx[key]; exists {
			continue
		}
		idx[key] = i
	}
	return idx
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes one balanced pair of surrounding quotes, or a lone leading
//   apostrophe (Excel's text prefix)
// - Normalizes to Unicode NFC so equal-looking text compares equal
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	switch {
	case len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0]:
		s = s[1 : len(s)-1]
	case strings.HasPrefix(s, "'"):
		s = s[1:]
	}

	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}

	return strings.TrimSpace(s)
}
