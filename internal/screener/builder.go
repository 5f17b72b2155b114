package screener

import (
	"slices"

	"github.com/investimentigrugno/fluxxo/internal/domain/models"
)

const (
	// SortField orders every query: largest companies first.
	SortField = "market_cap_basic"
	// ScanLimit caps scan results.
	ScanLimit = 100
	// LookupLimit is the row count expected from a single-ticker lookup.
	LookupLimit = 1
)

// BaselinePredicates is applied to every scan regardless of filter type.
func BaselinePredicates() []Predicate {
	return []Predicate{
		Col("type").In("stock", "etf"),
		Col("is_primary").Eq(true),
		Col("market_cap_basic").Between(10e9, 200e12),
		Col("close").Gt(Field("SMA50")),
		Col("close").Gt(Field("SMA100")),
		Col("close").Gt(Field("SMA200")),
		Col("RSI").Between(30, 80),
		Col("MACD.macd").Gt(Field("MACD.signal")),
		Col("Volatility.D").Gt(0.2),
		Col("Recommend.All").Gt(0.1),
		Col("relative_volume_10d_calc").Gt(0.7),
		Col("float_shares_percent_current").Gt(0.3),
	}
}

// FilterPredicates returns the overlay for a filter type. FilterDividend is
// declared but contributes nothing until a dividend column is agreed on;
// FilterAll and unknown types also return nil.
func FilterPredicates(f models.FilterType) []Predicate {
	switch f {
	case models.FilterTopScore:
		return []Predicate{
			Col("RSI").Between(50, 70),
			Col("Recommend.All").Gt(0.3),
		}
	case models.FilterValue:
		return []Predicate{
			Col("price_earnings_ttm").Lt(20),
			Col("price_earnings_ttm").Gt(5),
		}
	case models.FilterGrowth:
		return []Predicate{
			Col("Perf.1M").Gt(5),
			Col("RSI").Lt(70),
		}
	case models.FilterMomentum:
		return []Predicate{
			Col("RSI").Gt(50),
			Col("MACD.macd").Gt(Field("MACD.signal")),
			Col("Recommend.All").Gt(0.3),
		}
	}
	return nil
}

// BuildScan describes a scan: baseline AND filter overlay, sorted by market
// capitalization descending, capped at ScanLimit rows.
func BuildScan(p models.QueryParameters, prof Profile) Query {
	preds := BaselinePredicates()
	preds = append(preds, FilterPredicates(p.FilterType)...)
	return Query{
		Markets:        slices.Clone(prof.Markets),
		Fields:         slices.Clone(prof.Fields),
		Predicates:     preds,
		SortField:      SortField,
		SortDescending: true,
		Limit:          ScanLimit,
	}
}

// BuildLookup describes a single-ticker query with no predicates.
func BuildLookup(ticker string, prof Profile) Query {
	return Query{
		Markets:        slices.Clone(prof.Markets),
		Tickers:        []string{ticker},
		Fields:         slices.Clone(prof.Fields),
		SortField:      SortField,
		SortDescending: true,
		Limit:          LookupLimit,
	}
}
