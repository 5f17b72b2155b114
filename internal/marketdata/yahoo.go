package marketdata

import (
	"context"
	"fmt"
	"time"

	yfgo "github.com/komsit37/yf-go"

	"github.com/investimentigrugno/fluxxo/internal/metrics"
)

// YahooProvider implements Provider with yf-go's quoteSummary price module.
type YahooProvider struct {
	client  *yfgo.Client
	timeout time.Duration
}

// NewYahooProvider creates a provider bounding each call by timeout.
func NewYahooProvider(timeout time.Duration) *YahooProvider {
	return &YahooProvider{client: yfgo.NewClient(), timeout: timeout}
}

func (p *YahooProvider) Name() string { return "yahoo" }

func (p *YahooProvider) Quote(ctx context.Context, ticker string) (Quote, error) {
	sym := ToYahooSymbol(ticker)
	if sym == "" {
		return Quote{}, ErrNoQuote
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	res, err := p.client.QuoteSummaryTyped(cctx, sym, []yfgo.QuoteSummaryModule{yfgo.ModulePrice})
	metrics.ObserveUpstream(p.Name(), start, err)
	if err != nil {
		return Quote{}, fmt.Errorf("yahoo quote %s: %w", sym, err)
	}
	q, ok := fromPriceModule(sym, res.Price)
	if !ok {
		return Quote{}, fmt.Errorf("yahoo quote %s: %w", sym, ErrNoQuote)
	}
	return q, nil
}

// fromPriceModule maps the quoteSummary price module onto a Quote. It
// reports false when the module or its regular market price is missing.
func fromPriceModule(sym string, pm *yfgo.PriceModule) (Quote, bool) {
	if pm == nil || pm.RegularMarketPrice.Raw == nil {
		return Quote{}, false
	}
	q := Quote{
		Symbol:   sym,
		Price:    *pm.RegularMarketPrice.Raw,
		Currency: pm.Currency,
		Name:     pm.ShortName,
	}
	if q.Name == "" {
		q.Name = pm.LongName
	}
	return q, true
}
