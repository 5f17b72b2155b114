// Package marketdata fetches live quotes for the ticker-info endpoint.
package marketdata

import (
	"context"
	"errors"
	"strings"
)

// ErrNoQuote is returned when the provider knows nothing about a symbol.
var ErrNoQuote = errors.New("no quote available")

// Quote is a compact price snapshot.
type Quote struct {
	Symbol   string
	Price    float64
	Currency string
	Name     string
}

// Provider fetches a quote for an exchange-qualified ticker ("MIL:ENI").
type Provider interface {
	Name() string
	Quote(ctx context.Context, ticker string) (Quote, error)
}

// yahooSuffix maps scanner exchange prefixes to Yahoo Finance suffixes.
// US venues have no suffix.
var yahooSuffix = map[string]string{
	"MIL":        ".MI",
	"LSE":        ".L",
	"XETR":       ".DE",
	"FWB":        ".F",
	"EURONEXT":   ".PA",
	"BME":        ".MC",
	"SIX":        ".SW",
	"TSX":        ".TO",
	"ASX":        ".AX",
	"BMFBOVESPA": ".SA",
	"TSE":        ".T",
	"HKEX":       ".HK",
	"NSE":        ".NS",
	"OMXSTO":     ".ST",
	"OSL":        ".OL",
	"NASDAQ":     "",
	"NYSE":       "",
	"AMEX":       "",
	"NYSEARCA":   "",
	"OTC":        "",
}

// ToYahooSymbol converts "EXCH:SYM" to the Yahoo form ("MIL:ENI" -> "ENI.MI").
// Bare symbols and unknown exchanges pass through without a suffix. Yahoo
// spells share classes with a dash ("BRK.B" -> "BRK-B").
func ToYahooSymbol(ticker string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	exch, sym, ok := strings.Cut(ticker, ":")
	if !ok {
		return ticker
	}
	suffix := yahooSuffix[exch]
	if suffix == "" {
		sym = strings.ReplaceAll(sym, ".", "-")
	}
	return sym + suffix
}
