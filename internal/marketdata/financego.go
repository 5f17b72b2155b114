package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"

	"github.com/investimentigrugno/fluxxo/internal/metrics"
)

// FinanceGoProvider implements Provider with piquette/finance-go's v7
// quote endpoint.
type FinanceGoProvider struct {
	get     func(symbol string) (*finance.Quote, error)
	timeout time.Duration
}

// NewFinanceGoProvider creates a provider bounding each call by timeout.
func NewFinanceGoProvider(timeout time.Duration) *FinanceGoProvider {
	return &FinanceGoProvider{get: quote.Get, timeout: timeout}
}

func (p *FinanceGoProvider) Name() string { return "financego" }

type quoteResult struct {
	q   *finance.Quote
	err error
}

// Quote runs the blocking finance-go call in a goroutine so the request
// context and the provider timeout still bound it.
func (p *FinanceGoProvider) Quote(ctx context.Context, ticker string) (Quote, error) {
	sym := ToYahooSymbol(ticker)
	if sym == "" {
		return Quote{}, ErrNoQuote
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan quoteResult, 1)
	go func() {
		q, err := p.get(sym)
		done <- quoteResult{q: q, err: err}
	}()

	var res quoteResult
	select {
	case res = <-done:
	case <-cctx.Done():
		res.err = cctx.Err()
	}
	metrics.ObserveUpstream(p.Name(), start, res.err)

	if res.err != nil {
		return Quote{}, fmt.Errorf("finance-go quote %s: %w", sym, res.err)
	}
	if res.q == nil {
		return Quote{}, fmt.Errorf("finance-go quote %s: %w", sym, ErrNoQuote)
	}
	return Quote{
		Symbol:   sym,
		Price:    res.q.RegularMarketPrice,
		Currency: res.q.CurrencyID,
		Name:     res.q.ShortName,
	}, nil
}
