// Package scoring ranks scan rows with a weighted technical score used by
// the multi-scan endpoint.
//
// Six component scores in [0, 10] are combined with fixed weights; the
// result is scaled to 0-100. Missing or zero inputs score 0.
package scoring

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/investimentigrugno/fluxxo/internal/domain/models"
)

// Weights of RSI, MACD, trend, technical rating, volatility and market cap.
var Weights = []float64{0.20, 0.15, 0.25, 0.20, 0.10, 0.10}

// Keys added to every scored row.
const (
	KeyInvestmentScore = "InvestmentScore"
	KeyRSIScore        = "RSIScore"
	KeyMACDScore       = "MACDScore"
	KeyTrendScore      = "TrendScore"
	KeyTechRatingScore = "TechRatingScore"
	KeyVolatilityScore = "VolatilityScore"
	KeyMCapScore       = "MCapScore"
	KeyReason          = "RecommendationReason"
	KeyTechnicalRating = "TechnicalRating"
	KeyMarket          = "market"
)

const maxScore = 10.0

// Components holds the per-indicator scores.
type Components struct {
	RSI        float64
	MACD       float64
	Trend      float64
	TechRating float64
	Volatility float64
	MCap       float64
}

func (c Components) vector() []float64 {
	return []float64{c.RSI, c.MACD, c.Trend, c.TechRating, c.Volatility, c.MCap}
}

// Result is the score of one row.
type Result struct {
	Components
	InvestmentScore float64
	Reason          string
}

// Score computes the components and the investment score of row.
func Score(row models.Row) Result {
	c := Components{
		RSI:        rsiScore(value(row, "RSI")),
		MACD:       macdScore(value(row, "MACD.macd"), value(row, "MACD.signal")),
		Trend:      trendScore(value(row, "close"), value(row, "SMA50"), value(row, "SMA200")),
		TechRating: techRatingScore(value(row, "Recommend.All")),
		Volatility: volatilityScore(value(row, "Volatility.D")),
		MCap:       mcapScore(value(row, "market_cap_basic")),
	}
	total := floats.Dot(c.vector(), Weights)
	return Result{
		Components:      c,
		InvestmentScore: math.Round(total/maxScore*100*10) / 10,
		Reason:          reason(c),
	}
}

// Apply returns a copy of row enriched with its scores, the technical
// rating label and the market (the row's country, or "Unknown").
func Apply(row models.Row) models.Row {
	res := Score(row)
	out := row.Clone()
	out[KeyInvestmentScore] = res.InvestmentScore
	out[KeyRSIScore] = res.RSI
	out[KeyMACDScore] = res.MACD
	out[KeyTrendScore] = res.Trend
	out[KeyTechRatingScore] = res.TechRating
	out[KeyVolatilityScore] = res.Volatility
	out[KeyMCapScore] = res.MCap
	out[KeyReason] = res.Reason
	out[KeyTechnicalRating] = TechnicalRating(value(row, "Recommend.All"))

	market := row.String("country")
	if market == "" {
		market = "Unknown"
	}
	out[KeyMarket] = market
	return out
}

// Rank scores every row and orders them by investment score, best first.
// Ties keep their scan order.
func Rank(rows []models.Row) []models.Row {
	out := make([]models.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, Apply(r))
	}
	slices.SortStableFunc(out, func(a, b models.Row) int {
		sa, _ := a.Float(KeyInvestmentScore)
		sb, _ := b.Float(KeyInvestmentScore)
		return cmp.Compare(sb, sa)
	})
	return out
}

// Top returns the n best rows of an already ranked slice.
func Top(ranked []models.Row, n int) []models.Row {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// TechnicalRating labels an overall recommendation value.
func TechnicalRating(rating float64) string {
	switch {
	case rating == 0:
		return "N/A"
	case rating > 0.5:
		return "Strong Buy"
	case rating > 0.1:
		return "Buy"
	case rating > -0.1:
		return "Neutral"
	case rating > -0.5:
		return "Sell"
	default:
		return "Strong Sell"
	}
}

// value reads a numeric field; missing, nil and NaN read as 0.
func value(row models.Row, key string) float64 {
	v, ok := row.Float(key)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func rsiScore(rsi float64) float64 {
	switch {
	case rsi == 0:
		return 0
	case rsi >= 50 && rsi <= 70:
		return 10
	case rsi >= 40 && rsi < 50:
		return 7
	case rsi >= 30 && rsi < 40:
		return 5
	case rsi > 80:
		return 2
	default:
		return 1
	}
}

func macdScore(macd, signal float64) float64 {
	if macd == 0 || signal == 0 {
		return 0
	}
	diff := macd - signal
	switch {
	case diff > 0.05:
		return 10
	case diff > 0:
		return 7
	case diff > -0.05:
		return 4
	default:
		return 1
	}
}

func trendScore(price, sma50, sma200 float64) float64 {
	if price == 0 || sma50 == 0 || sma200 == 0 {
		return 0
	}
	var score float64
	if price > sma50 {
		score += 5
	}
	if price > sma200 {
		score += 3
	}
	// golden cross
	if sma50 > sma200 {
		score += 2
	}
	return score
}

func techRatingScore(rating float64) float64 {
	switch {
	case rating == 0:
		return 0
	case rating > 0.5:
		return 10
	case rating > 0.3:
		return 8
	case rating > 0.1:
		return 6
	case rating > -0.1:
		return 4
	default:
		return 2
	}
}

func volatilityScore(vol float64) float64 {
	switch {
	case vol == 0:
		return 0
	case vol >= 0.5 && vol <= 2.0:
		return 10
	case vol >= 0.3 && vol < 0.5:
		return 7
	case vol > 2.0 && vol <= 3.0:
		return 6
	case vol > 3.0:
		return 3
	default:
		return 2
	}
}

func mcapScore(mcap float64) float64 {
	switch {
	case mcap == 0:
		return 0
	case mcap >= 1e9 && mcap <= 50e9:
		return 10
	case mcap > 50e9 && mcap <= 200e9:
		return 8
	case mcap >= 500e6 && mcap < 1e9:
		return 6
	default:
		return 4
	}
}

func reason(c Components) string {
	var reasons []string
	if c.RSI >= 8 {
		reasons = append(reasons, "Optimal RSI")
	}
	if c.MACD >= 7 {
		reasons = append(reasons, "Positive MACD")
	}
	if c.Trend >= 8 {
		reasons = append(reasons, "Strong uptrend")
	}
	if c.TechRating >= 8 {
		reasons = append(reasons, "Positive technical rating")
	}
	if c.Volatility >= 7 {
		reasons = append(reasons, "Controlled volatility")
	}
	if len(reasons) == 0 {
		return "Analysis pending"
	}
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return strings.Join(reasons, ", ")
}
