// Package service holds the screener use cases behind the HTTP handlers.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/investimentigrugno/fluxxo/internal/analysis"
	"github.com/investimentigrugno/fluxxo/internal/domain/models"
	"github.com/investimentigrugno/fluxxo/internal/logger"
	"github.com/investimentigrugno/fluxxo/internal/marketdata"
	"github.com/investimentigrugno/fluxxo/internal/metrics"
	"github.com/investimentigrugno/fluxxo/internal/screener"
	"github.com/investimentigrugno/fluxxo/internal/scoring"
	"github.com/investimentigrugno/fluxxo/internal/storage"
)

// recordTimeout bounds the best-effort audit insert after a scan.
const recordTimeout = 2 * time.Second

// ScreenerService defines the screener use cases.
type ScreenerService interface {
	Scan(ctx context.Context, p models.QueryParameters) (models.ScanResult, error)
	MultiScan(ctx context.Context, p models.QueryParameters) (models.ScanResult, error)
	Fundamental(ctx context.Context, ticker, profile string) (models.Row, error)
	TickerInfo(ctx context.Context, ticker string) (models.TickerInfo, error)
	Analyze(ctx context.Context, ticker string, data models.Row) (analysis.Analysis, error)
	History(ctx context.Context, limit int) ([]models.ScanRun, error)
	Source() string
}

// Deps are the collaborators of the screener service. Quotes may be nil,
// in which case ticker info relies on the screener alone. Runs defaults to
// storage.NopRepository and Profiles to screener.DefaultProfiles.
type Deps struct {
	Executor screener.Executor
	Quotes   marketdata.Provider
	Runs     storage.ScanRunRepository
	Profiles screener.Profiles
	Source   string
}

type screenerService struct {
	exec     screener.Executor
	quotes   marketdata.Provider
	runs     storage.ScanRunRepository
	profiles screener.Profiles
	source   string
}

func NewScreenerService(d Deps) ScreenerService {
	s := &screenerService{
		exec:     d.Executor,
		quotes:   d.Quotes,
		runs:     d.Runs,
		profiles: d.Profiles,
		source:   d.Source,
	}
	if s.runs == nil {
		s.runs = storage.NopRepository{}
	}
	if s.profiles == nil {
		s.profiles = screener.DefaultProfiles()
	}
	return s
}

func (s *screenerService) Source() string { return s.source }

// Scan runs the baseline plus filter overlay. An empty result is a success.
func (s *screenerService) Scan(ctx context.Context, p models.QueryParameters) (models.ScanResult, error) {
	prof, err := s.profiles.Get(screener.ProfileScan)
	if err != nil {
		return models.ScanResult{}, err
	}
	q := screener.BuildScan(p, prof)

	start := time.Now()
	rows, err := s.exec.Execute(ctx, q)
	s.record(ctx, p.FilterType, len(rows), start, err)
	if err != nil {
		return models.ScanResult{}, fmt.Errorf("%w: scan %s: %w", ErrUpstream, p.FilterType, err)
	}

	stocks := screener.Sanitize(rows)
	metrics.ScanRows.WithLabelValues(filterLabel(p.FilterType)).Observe(float64(len(stocks)))
	log := logger.Ctx(ctx, "service")
	log.Debug().Str("filter", string(p.FilterType)).Int("rows", len(stocks)).Msg("scan completed")

	return models.ScanResult{Stocks: stocks, Count: len(stocks), Filter: p.FilterType}, nil
}

// MultiScan scans and ranks the rows by investment score.
func (s *screenerService) MultiScan(ctx context.Context, p models.QueryParameters) (models.ScanResult, error) {
	res, err := s.Scan(ctx, p)
	if err != nil {
		return res, err
	}
	res.Stocks = scoring.Rank(res.Stocks)
	res.Count = len(res.Stocks)
	return res, nil
}

// Fundamental looks up one ticker with the named profile and returns the
// sanitized first row.
func (s *screenerService) Fundamental(ctx context.Context, ticker, profile string) (models.Row, error) {
	prof, err := s.profiles.Get(profile)
	if err != nil {
		return nil, err
	}
	rows, err := s.exec.Execute(ctx, screener.BuildLookup(ticker, prof))
	if err != nil {
		return nil, fmt.Errorf("%w: lookup %s: %w", ErrUpstream, ticker, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data found for %s", ErrNotFound, ticker)
	}
	return screener.SanitizeRow(rows[0]), nil
}

// TickerInfo queries the quote provider and the screener profile lookup
// concurrently and merges them. Price and name prefer the quote; sector
// always comes from the screener.
func (s *screenerService) TickerInfo(ctx context.Context, ticker string) (models.TickerInfo, error) {
	var (
		quote    marketdata.Quote
		quoteErr error
		row      models.Row
		rowErr   error
	)

	g, gctx := errgroup.WithContext(ctx)
	if s.quotes != nil {
		g.Go(func() error {
			quote, quoteErr = s.quotes.Quote(gctx, ticker)
			return nil
		})
	} else {
		quoteErr = marketdata.ErrNoQuote
	}
	g.Go(func() error {
		row, rowErr = s.Fundamental(gctx, ticker, screener.ProfileTicker)
		return nil
	})
	_ = g.Wait()

	log := logger.Ctx(ctx, "service")
	haveQuote := quoteErr == nil
	haveRow := rowErr == nil
	if !haveQuote && !errors.Is(quoteErr, marketdata.ErrNoQuote) {
		log.Warn().Err(quoteErr).Str("ticker", ticker).Msg("quote provider failed")
	}

	if !haveQuote && !haveRow {
		// Not found only when both sides answered with no data.
		quoteFailed := !errors.Is(quoteErr, marketdata.ErrNoQuote)
		rowFailed := !errors.Is(rowErr, ErrNotFound)
		if quoteFailed || rowFailed {
			return models.TickerInfo{}, fmt.Errorf("%w: ticker info %s: %w", ErrUpstream, ticker, errors.Join(quoteErr, rowErr))
		}
		return models.TickerInfo{}, fmt.Errorf("%w: no data found for %s", ErrNotFound, ticker)
	}

	info := models.TickerInfo{Ticker: ticker}
	if haveQuote {
		info.Price = quote.Price
		info.Currency = quote.Currency
		info.Name = quote.Name
	}
	if haveRow {
		if info.Price == 0 {
			info.Price, _ = row.Float("close")
		}
		if info.Currency == "" {
			info.Currency = row.String("currency")
		}
		if info.Name == "" {
			info.Name = firstNonEmpty(row.String("description"), row.String("name"))
		}
		info.Sector = row.String("sector")
	} else if !errors.Is(rowErr, ErrNotFound) {
		log.Warn().Err(rowErr).Str("ticker", ticker).Msg("screener profile lookup failed")
	}
	return info, nil
}

// Analyze evaluates data, fetching the fundamental row first when data is empty.
func (s *screenerService) Analyze(ctx context.Context, ticker string, data models.Row) (analysis.Analysis, error) {
	if len(data) == 0 {
		row, err := s.Fundamental(ctx, ticker, screener.ProfileFundamental)
		if err != nil {
			return analysis.Analysis{}, err
		}
		data = row
	}
	return analysis.Evaluate(ticker, data), nil
}

// History returns the most recent scan runs.
func (s *screenerService) History(ctx context.Context, limit int) ([]models.ScanRun, error) {
	runs, err := s.runs.Recent(ctx, limit)
	if errors.Is(err, storage.ErrDisabled) {
		return nil, ErrHistoryDisabled
	}
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return runs, nil
}

// record appends a scan run to the audit log. Failures are logged and
// never fail the scan.
func (s *screenerService) record(ctx context.Context, f models.FilterType, rows int, start time.Time, scanErr error) {
	run := models.ScanRun{
		RequestID:  logger.RequestID(ctx),
		FilterType: string(f),
		RowCount:   rows,
		DurationMS: time.Since(start).Milliseconds(),
		Status:     models.ScanStatusOK,
	}
	if scanErr != nil {
		run.Status = models.ScanStatusError
	}

	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := s.runs.Record(rctx, run); err != nil {
		log := logger.Ctx(ctx, "service")
		log.Warn().Err(err).Msg("failed to record scan run")
	}
}

// filterLabel bounds metric cardinality: unknown filter types share a label.
func filterLabel(f models.FilterType) string {
	if f.Known() {
		return string(f)
	}
	return "other"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
