package tables

import "strings"

// claimStatuses maps lowercase claim statuses to their canonical spelling.
var claimStatuses = map[string]string{
	"pending":   "Pending",
	"completed": "Completed",
	"cancelled": "Cancelled",
	"canceled":  "Cancelled",
}

// NormalizeSpaces collapses runs of whitespace to a single space, so
// "Fast  Food" and "Fast Food" group together.
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeClaimStatus converts a claim status to its canonical spelling.
// Unknown statuses are returned with whitespace collapsed.
func NormalizeClaimStatus(s string) string {
	s = NormalizeSpaces(s)
	if canonical, ok := claimStatuses[strings.ToLower(s)]; ok {
		return canonical
	}
	return s
}

// NormalizeID strips a trailing ".0" that spreadsheet exports add to
// integer ids, so "12.0" joins with "12".
func NormalizeID(s string) string {
	s = strings.TrimSpace(s)
	if trimmed, ok := strings.CutSuffix(s, ".0"); ok && trimmed != "" && isDigits(trimmed) {
		return trimmed
	}
	return s
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
