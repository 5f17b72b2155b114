package models

import "strings"

// FilterType selects an extra predicate overlay for scan queries.
//
// Unknown values are preserved as-is and contribute no predicates,
// so a scan with an unrecognized filter returns baseline matches only.
type FilterType string

const (
	FilterAll      FilterType = "all"
	FilterTopScore FilterType = "top_score"
	FilterValue    FilterType = "value"
	FilterGrowth   FilterType = "growth"
	FilterDividend FilterType = "dividend"
	FilterMomentum FilterType = "momentum"
)

// ParseFilterType maps a raw filterType value onto a FilterType. Empty
// input maps to FilterAll; anything else is kept verbatim and matched
// case-sensitively, so "TOP_SCORE" is an unknown filter.
func ParseFilterType(s string) FilterType {
	if s == "" {
		return FilterAll
	}
	return FilterType(s)
}

// Known reports whether f is one of the declared filter types.
func (f FilterType) Known() bool {
	switch f {
	case FilterAll, FilterTopScore, FilterValue, FilterGrowth, FilterDividend, FilterMomentum:
		return true
	}
	return false
}

// QueryParameters is the decoded request: a ticker for single-entity
// lookups or a filter type for scans. Created per request and never mutated.
type QueryParameters struct {
	Ticker     string
	FilterType FilterType
}

// NormalizeTicker trims and upper-cases an exchange-qualified ticker ("nasdaq:aapl" -> "NASDAQ:AAPL").
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
