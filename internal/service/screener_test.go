package service

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/investimentigrugno/fluxxo/internal/analysis"
	"github.com/investimentigrugno/fluxxo/internal/domain/models"
	"github.com/investimentigrugno/fluxxo/internal/fixture"
	"github.com/investimentigrugno/fluxxo/internal/logger"
	"github.com/investimentigrugno/fluxxo/internal/marketdata"
	"github.com/investimentigrugno/fluxxo/internal/screener"
	"github.com/investimentigrugno/fluxxo/internal/scoring"
	"github.com/investimentigrugno/fluxxo/internal/storage"
)

type stubExecutor struct {
	rows []models.Row
	err  error
	last screener.Query
}

func (s *stubExecutor) Execute(_ context.Context, q screener.Query) ([]models.Row, error) {
	s.last = q
	return s.rows, s.err
}

type stubQuotes struct {
	q   marketdata.Quote
	err error
}

func (s *stubQuotes) Name() string { return "stub" }
func (s *stubQuotes) Quote(_ context.Context, _ string) (marketdata.Quote, error) {
	return s.q, s.err
}

type stubRuns struct {
	mu        sync.Mutex
	recorded  []models.ScanRun
	recordErr error
	recent    []models.ScanRun
	recentErr error
}

func (s *stubRuns) Record(_ context.Context, run models.ScanRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorded = append(s.recorded, run)
	return s.recordErr
}

func (s *stubRuns) Recent(_ context.Context, _ int) ([]models.ScanRun, error) {
	return s.recent, s.recentErr
}

func fixtureService(t *testing.T) ScreenerService {
	t.Helper()
	ex, err := fixture.Load(filepath.Join("..", "fixture", "testdata", "universe.json"))
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return NewScreenerService(Deps{Executor: ex, Source: "fixture"})
}

func TestScan_Properties(t *testing.T) {
	svc := fixtureService(t)
	for _, f := range []models.FilterType{models.FilterAll, models.FilterTopScore, models.FilterValue, models.FilterGrowth, models.FilterMomentum, models.FilterDividend, "penny"} {
		t.Run(string(f), func(t *testing.T) {
			res, err := svc.Scan(context.Background(), models.QueryParameters{FilterType: f})
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if res.Count != len(res.Stocks) || len(res.Stocks) > screener.ScanLimit {
				t.Fatalf("count=%d len=%d", res.Count, len(res.Stocks))
			}
			prev := -1.0
			for i, r := range res.Stocks {
				mc, _ := r.Float("market_cap_basic")
				if i > 0 && mc > prev {
					t.Fatalf("rows not sorted by market cap desc at %d", i)
				}
				prev = mc
				for k, v := range r {
					if v != nil && screener.IsMissing(v) {
						t.Fatalf("missing marker left in %s", k)
					}
				}
				if f == models.FilterTopScore {
					rsi, _ := r.Float("RSI")
					rec, _ := r.Float("Recommend.All")
					if rsi < 50 || rsi > 70 || rec <= 0.3 {
						t.Fatalf("top_score row violates overlay: RSI=%v rec=%v", rsi, rec)
					}
				}
			}
		})
	}
}

func TestScan_Idempotent(t *testing.T) {
	svc := fixtureService(t)
	p := models.QueryParameters{FilterType: models.FilterMomentum}
	a, err := svc.Scan(context.Background(), p)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	b, _ := svc.Scan(context.Background(), p)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated scans differ")
	}
}

func TestScan_FilterNameIsCaseSensitive(t *testing.T) {
	ex, err := fixture.Load(filepath.Join("..", "fixture", "testdata", "universe.json"))
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	runs := &stubRuns{}
	svc := NewScreenerService(Deps{Executor: ex, Runs: runs})

	upper, err := svc.Scan(context.Background(), models.QueryParameters{FilterType: models.ParseFilterType("TOP_SCORE")})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	all, _ := svc.Scan(context.Background(), models.QueryParameters{FilterType: models.FilterAll})

	if upper.Filter != "TOP_SCORE" {
		t.Fatalf("filter=%q, want TOP_SCORE", upper.Filter)
	}
	if !reflect.DeepEqual(upper.Stocks, all.Stocks) {
		t.Fatalf("upper-case filter applied an overlay: %d rows vs %d baseline", upper.Count, all.Count)
	}
	if runs.recorded[0].FilterType != "TOP_SCORE" {
		t.Fatalf("audit filter=%q, want TOP_SCORE", runs.recorded[0].FilterType)
	}
}

func TestScan_EmptyIsSuccess(t *testing.T) {
	runs := &stubRuns{}
	svc := NewScreenerService(Deps{Executor: &stubExecutor{}, Runs: runs})
	res, err := svc.Scan(context.Background(), models.QueryParameters{FilterType: models.FilterValue})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if res.Stocks == nil || res.Count != 0 || res.Filter != models.FilterValue {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(runs.recorded) != 1 || runs.recorded[0].Status != models.ScanStatusOK || runs.recorded[0].FilterType != "value" {
		t.Fatalf("unexpected audit: %+v", runs.recorded)
	}
}

func TestScan_UpstreamError(t *testing.T) {
	runs := &stubRuns{recordErr: errors.New("db down")}
	boom := errors.New("connection reset")
	svc := NewScreenerService(Deps{Executor: &stubExecutor{err: boom}, Runs: runs})

	ctx := logger.ContextWithRequestID(context.Background(), "rid-7")
	_, err := svc.Scan(ctx, models.QueryParameters{FilterType: models.FilterAll})
	if !errors.Is(err, ErrUpstream) || !errors.Is(err, boom) {
		t.Fatalf("err=%v, want ErrUpstream wrapping cause", err)
	}
	if len(runs.recorded) != 1 || runs.recorded[0].Status != models.ScanStatusError || runs.recorded[0].RequestID != "rid-7" {
		t.Fatalf("unexpected audit: %+v", runs.recorded)
	}
}

func TestScan_SanitizesRows(t *testing.T) {
	ex := &stubExecutor{rows: []models.Row{{"ticker": "X", "RSI": math.NaN()}}}
	svc := NewScreenerService(Deps{Executor: ex})
	res, err := svc.Scan(context.Background(), models.QueryParameters{FilterType: models.FilterAll})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if v, ok := res.Stocks[0]["RSI"]; !ok || v != nil {
		t.Fatalf("RSI=%v, want nil", v)
	}
	if ex.last.Limit != screener.ScanLimit || !ex.last.SortDescending {
		t.Fatalf("scan query not built with limit/sort: %+v", ex.last)
	}
}

func TestMultiScan_Ranks(t *testing.T) {
	svc := fixtureService(t)
	res, err := svc.MultiScan(context.Background(), models.QueryParameters{FilterType: models.FilterAll})
	if err != nil {
		t.Fatalf("MultiScan: %v", err)
	}
	if res.Count != 5 {
		t.Fatalf("count=%d, want 5", res.Count)
	}
	prev := 101.0
	for _, r := range res.Stocks {
		score, ok := r.Float(scoring.KeyInvestmentScore)
		if !ok || score > prev {
			t.Fatalf("stocks not ranked by score")
		}
		prev = score
		if r[scoring.KeyTechnicalRating] == nil || r[scoring.KeyReason] == nil {
			t.Fatalf("row missing score annotations: %v", r)
		}
	}
}

func TestFundamental(t *testing.T) {
	svc := fixtureService(t)

	row, err := svc.Fundamental(context.Background(), "XETR:SAP", screener.ProfileFundamental)
	if err != nil {
		t.Fatalf("Fundamental: %v", err)
	}
	if v, ok := row["RSI"]; !ok || v != nil {
		t.Fatalf("RSI=%v (present=%v), want explicit null", v, ok)
	}
	if len(row) != len(screener.FundamentalFields)+1 {
		t.Fatalf("row has %d keys", len(row))
	}

	basic, err := svc.Fundamental(context.Background(), "MIL:ENI", screener.ProfileBasic)
	if err != nil || len(basic) != len(screener.BasicFields)+1 {
		t.Fatalf("basic lookup: %v %v", basic, err)
	}

	if _, err := svc.Fundamental(context.Background(), "NASDAQ:NOPE", screener.ProfileFundamental); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
	if _, err := svc.Fundamental(context.Background(), "NASDAQ:AAPL", "weird"); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown profile should be an internal error, got %v", err)
	}

	failing := NewScreenerService(Deps{Executor: &stubExecutor{err: errors.New("boom")}})
	if _, err := failing.Fundamental(context.Background(), "NASDAQ:AAPL", screener.ProfileFundamental); !errors.Is(err, ErrUpstream) {
		t.Fatalf("err=%v, want ErrUpstream", err)
	}
}

func TestTickerInfo(t *testing.T) {
	profileRow := []models.Row{{"ticker": "MIL:ENI", "name": "ENI", "description": "Eni S.p.A.", "close": 14.6, "currency": "EUR", "sector": "Energy Minerals"}}
	boom := errors.New("boom")

	cases := []struct {
		name    string
		exec    *stubExecutor
		quotes  marketdata.Provider
		want    models.TickerInfo
		wantErr error
	}{
		{
			name:   "quote and profile",
			exec:   &stubExecutor{rows: profileRow},
			quotes: &stubQuotes{q: marketdata.Quote{Price: 14.7, Name: "ENI", Currency: ""}},
			want:   models.TickerInfo{Ticker: "MIL:ENI", Price: 14.7, Currency: "EUR", Name: "ENI", Sector: "Energy Minerals"},
		},
		{
			name:   "quote fails, profile answers",
			exec:   &stubExecutor{rows: profileRow},
			quotes: &stubQuotes{err: boom},
			want:   models.TickerInfo{Ticker: "MIL:ENI", Price: 14.6, Currency: "EUR", Name: "Eni S.p.A.", Sector: "Energy Minerals"},
		},
		{
			name:   "no quote provider",
			exec:   &stubExecutor{rows: profileRow},
			quotes: nil,
			want:   models.TickerInfo{Ticker: "MIL:ENI", Price: 14.6, Currency: "EUR", Name: "Eni S.p.A.", Sector: "Energy Minerals"},
		},
		{
			name:   "profile empty, quote answers",
			exec:   &stubExecutor{},
			quotes: &stubQuotes{q: marketdata.Quote{Price: 14.7, Name: "ENI", Currency: "EUR"}},
			want:   models.TickerInfo{Ticker: "MIL:ENI", Price: 14.7, Currency: "EUR", Name: "ENI"},
		},
		{
			name:    "nothing anywhere",
			exec:    &stubExecutor{},
			quotes:  &stubQuotes{err: marketdata.ErrNoQuote},
			wantErr: ErrNotFound,
		},
		{
			name:    "both providers fail",
			exec:    &stubExecutor{err: boom},
			quotes:  &stubQuotes{err: boom},
			wantErr: ErrUpstream,
		},
		{
			name:    "screener fails, quote has no data",
			exec:    &stubExecutor{err: boom},
			quotes:  &stubQuotes{err: marketdata.ErrNoQuote},
			wantErr: ErrUpstream,
		},
		{
			name:    "quote fails, screener has no data",
			exec:    &stubExecutor{},
			quotes:  &stubQuotes{err: boom},
			wantErr: ErrUpstream,
		},
		{
			name:    "no data and no quote provider",
			exec:    &stubExecutor{},
			wantErr: ErrNotFound,
		},
		{
			name:    "screener fails without quote provider",
			exec:    &stubExecutor{err: boom},
			wantErr: ErrUpstream,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewScreenerService(Deps{Executor: tc.exec, Quotes: tc.quotes})
			got, err := svc.TickerInfo(context.Background(), "MIL:ENI")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err=%v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("TickerInfo: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	svc := fixtureService(t)

	a, err := svc.Analyze(context.Background(), "MIL:ENI", nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.Valuation != analysis.Undervalued {
		t.Fatalf("valuation=%s, want UNDERVALUED from fetched fundamentals", a.Valuation)
	}

	a, err = svc.Analyze(context.Background(), "ANY:THING", models.Row{analysis.FieldPE: 40.0, analysis.FieldROE: 0.2})
	if err != nil || a.Valuation != analysis.Overvalued {
		t.Fatalf("supplied data not used: %+v %v", a, err)
	}

	if _, err := svc.Analyze(context.Background(), "NASDAQ:NOPE", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestHistory(t *testing.T) {
	runs := []models.ScanRun{{ID: "a"}, {ID: "b"}}
	cases := []struct {
		name    string
		repo    storage.ScanRunRepository
		wantLen int
		wantErr error
	}{
		{name: "enabled", repo: &stubRuns{recent: runs}, wantLen: 2},
		{name: "disabled", repo: storage.NopRepository{}, wantErr: ErrHistoryDisabled},
		{name: "db error", repo: &stubRuns{recentErr: errors.New("db")}, wantErr: errors.New("any")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewScreenerService(Deps{Executor: &stubExecutor{}, Runs: tc.repo})
			out, err := svc.History(context.Background(), 10)
			switch {
			case tc.wantErr == nil && err != nil:
				t.Fatalf("History: %v", err)
			case tc.wantErr == ErrHistoryDisabled && !errors.Is(err, ErrHistoryDisabled):
				t.Fatalf("err=%v, want ErrHistoryDisabled", err)
			case tc.wantErr != nil && err == nil:
				t.Fatalf("expected error")
			}
			if len(out) != tc.wantLen {
				t.Fatalf("len=%d, want %d", len(out), tc.wantLen)
			}
		})
	}
}

func TestSource(t *testing.T) {
	if got := fixtureService(t).Source(); got != "fixture" {
		t.Fatalf("Source()=%q", got)
	}
}
