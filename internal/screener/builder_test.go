package screener

import (
	"testing"

	"github.com/investimentigrugno/fluxxo/internal/domain/models"
)

func TestBuildScan_BaselineAndOverlay(t *testing.T) {
	prof := DefaultProfiles()[ProfileScan]
	baseline := len(BaselinePredicates())

	cases := []struct {
		name   string
		filter models.FilterType
		extra  int
	}{
		{name: "all", filter: models.FilterAll, extra: 0},
		{name: "top_score", filter: models.FilterTopScore, extra: 2},
		{name: "value", filter: models.FilterValue, extra: 2},
		{name: "growth", filter: models.FilterGrowth, extra: 2},
		{name: "momentum", filter: models.FilterMomentum, extra: 3},
		{name: "dividend is a no-op", filter: models.FilterDividend, extra: 0},
		{name: "unknown keeps baseline", filter: models.FilterType("penny"), extra: 0},
		{name: "filter names are case-sensitive", filter: models.FilterType("TOP_SCORE"), extra: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := BuildScan(models.QueryParameters{FilterType: tc.filter}, prof)
			if len(q.Predicates) != baseline+tc.extra {
				t.Fatalf("predicates=%d, want %d", len(q.Predicates), baseline+tc.extra)
			}
			if q.SortField != "market_cap_basic" || !q.SortDescending {
				t.Fatalf("unexpected sort %q desc=%v", q.SortField, q.SortDescending)
			}
			if q.Limit != 100 {
				t.Fatalf("limit=%d, want 100", q.Limit)
			}
			if len(q.Markets) != 49 || len(q.Fields) != len(ScanFields) {
				t.Fatalf("unexpected universe: %d markets, %d fields", len(q.Markets), len(q.Fields))
			}
			if len(q.Tickers) != 0 {
				t.Fatalf("scan should not pin tickers: %v", q.Tickers)
			}
		})
	}
}

func TestBuildScan_DoesNotAliasProfile(t *testing.T) {
	prof := DefaultProfiles()[ProfileScan]
	q := BuildScan(models.QueryParameters{FilterType: models.FilterAll}, prof)
	q.Markets[0] = "mars"
	q.Fields[0] = "bogus"
	if prof.Markets[0] == "mars" || prof.Fields[0] == "bogus" {
		t.Fatalf("query shares backing arrays with the profile")
	}
}

func TestBuildLookup(t *testing.T) {
	prof := DefaultProfiles()[ProfileFundamental]
	q := BuildLookup("NASDAQ:AAPL", prof)
	if len(q.Tickers) != 1 || q.Tickers[0] != "NASDAQ:AAPL" {
		t.Fatalf("tickers=%v", q.Tickers)
	}
	if q.Limit != 1 || len(q.Predicates) != 0 {
		t.Fatalf("unexpected lookup query: %+v", q)
	}
	if len(q.Markets) != 11 || len(q.Fields) != 19 {
		t.Fatalf("unexpected lookup universe: %d markets, %d fields", len(q.Markets), len(q.Fields))
	}
}

func TestQueryClone(t *testing.T) {
	q := BuildScan(models.QueryParameters{FilterType: models.FilterMomentum}, DefaultProfiles()[ProfileScan])
	c := q.Clone()
	c.Predicates[0] = Col("x").Gt(1)
	c.Markets[0] = "mars"
	if q.Predicates[0].Field == "x" || q.Markets[0] == "mars" {
		t.Fatalf("clone aliases the original")
	}
}

func TestColumnDSL(t *testing.T) {
	cases := []struct {
		name string
		p    Predicate
		want string
	}{
		{name: "int widened", p: Col("RSI").Gt(50), want: "RSI greater 50"},
		{name: "field operand", p: Col("close").Gt(Field("SMA50")), want: "close greater SMA50"},
		{name: "column operand", p: Col("close").Lte(Col("SMA200")), want: "close eless SMA200"},
		{name: "between", p: Col("RSI").Between(30, 80), want: "RSI in_range [30, 80]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.String(); got != tc.want {
				t.Fatalf("String()=%q, want %q", got, tc.want)
			}
		})
	}
	if _, ok := Col("RSI").Gt(50).Operand.(float64); !ok {
		t.Fatalf("int operand not widened to float64")
	}
}
