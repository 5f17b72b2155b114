// Package analysis produces a rule-based fundamental assessment of one
// ticker from its P/E, return on equity, debt/equity and current ratio.
package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/investimentigrugno/fluxxo/internal/domain/models"
)

// Valuation is the overall verdict.
type Valuation string

const (
	Undervalued Valuation = "UNDERVALUED"
	Neutral     Valuation = "NEUTRAL"
	Overvalued  Valuation = "OVERVALUED"
)

// Recommendation values.
const (
	RecommendBuy     = "BUY"
	RecommendHold    = "HOLD"
	RecommendHoldOut = "HOLD/SELL"
)

// Source fields read from the fundamental row.
const (
	FieldPE           = "price_earnings_ttm"
	FieldROE          = "return_on_equity"
	FieldDebtEquity   = "debt_to_equity"
	FieldCurrentRatio = "current_ratio"
)

// Metric is one evaluated ratio.
type Metric struct {
	Name    string  `json:"name" example:"P/E Ratio"`
	Value   float64 `json:"value" example:"12.4"`
	Display string  `json:"display" example:"12.4x"`
	Healthy bool    `json:"healthy" example:"true"`
	Verdict string  `json:"verdict" example:"Reasonable"`
}

// Analysis is the result of Evaluate.
type Analysis struct {
	Ticker         string    `json:"ticker" example:"MIL:ENI"`
	Valuation      Valuation `json:"valuation" example:"UNDERVALUED"`
	Stars          int       `json:"stars" example:"5"`
	Metrics        []Metric  `json:"metrics"`
	Strengths      []string  `json:"strengths"`
	Risks          []string  `json:"risks"`
	Recommendation string    `json:"recommendation" example:"BUY"`
	Outlook        string    `json:"outlook"`
	Summary        string    `json:"summary"`
}

// Evaluate assesses data for ticker. Values may be numbers or numeric
// strings; anything else, including null, reads as 0.
func Evaluate(ticker string, data models.Row) Analysis {
	pe := number(data[FieldPE])
	roe := number(data[FieldROE])
	de := number(data[FieldDebtEquity])
	cr := number(data[FieldCurrentRatio])

	a := Analysis{
		Ticker:    ticker,
		Valuation: Neutral,
		Stars:     3,
		Strengths: []string{},
		Risks:     []string{},
	}
	switch {
	case pe < 15 && roe > 0.15:
		a.Valuation, a.Stars = Undervalued, 5
	case pe > 30 || roe < 0.1:
		a.Valuation, a.Stars = Overvalued, 2
	}

	a.Metrics = []Metric{
		metric("P/E Ratio", pe, fmt.Sprintf("%.1fx", pe), pe < 20, "Reasonable", "High"),
		metric("ROE", roe, fmt.Sprintf("%.1f%%", roe*100), roe > 0.15, "Excellent", "Low"),
		metric("Debt/Equity", de, fmt.Sprintf("%.2f", de), de < 1, "Solid", "High"),
		metric("Current Ratio", cr, fmt.Sprintf("%.2f", cr), cr > 1.5, "Liquid", "Watch"),
	}

	if roe > 0.15 {
		a.Strengths = append(a.Strengths, "High return on equity")
	}
	if cr > 1.5 {
		a.Strengths = append(a.Strengths, "Good short-term liquidity")
	}
	if de < 1 {
		a.Strengths = append(a.Strengths, "Prudent debt management")
	}

	if pe > 30 {
		a.Risks = append(a.Risks, "Valuation high relative to earnings")
	}
	if cr < 1.2 {
		a.Risks = append(a.Risks, "Liquidity potentially under pressure")
	}
	if de > 1.5 {
		a.Risks = append(a.Risks, "Significant leverage")
	}

	switch a.Valuation {
	case Undervalued:
		a.Recommendation = RecommendBuy
		a.Outlook = "Solid fundamentals and an attractive valuation for gradual accumulation."
	case Overvalued:
		a.Recommendation = RecommendHoldOut
		a.Outlook = "High valuation, wait for better entry points."
	default:
		a.Recommendation = RecommendHold
		a.Outlook = "Average fundamentals, monitor for confirmation."
	}

	a.Summary = summary(a)
	return a
}

func metric(name string, v float64, display string, healthy bool, good, bad string) Metric {
	m := Metric{Name: name, Value: v, Display: display, Healthy: healthy, Verdict: bad}
	if healthy {
		m.Verdict = good
	}
	return m
}

// number mirrors a lenient float parse: numbers and numeric strings are
// accepted, everything else (nil, NaN, text) is 0.
func number(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func summary(a Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Fundamental analysis %s**\n\n", a.Ticker)
	fmt.Fprintf(&b, "**Rating:** %s %s\n\n", strings.Repeat("★", a.Stars), a.Valuation)

	b.WriteString("**Valuation:**\n")
	for _, m := range a.Metrics {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", m.Name, m.Display, m.Verdict)
	}

	writeList(&b, "Strengths", a.Strengths)
	writeList(&b, "Risks", a.Risks)

	fmt.Fprintf(&b, "\n**Recommendation:** %s\n\n%s\n\n", a.Recommendation, a.Outlook)
	b.WriteString("---\n*Automatically generated analysis. Not financial advice.*")
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n**%s:**\n", title)
	if len(items) == 0 {
		b.WriteString("- none\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}
