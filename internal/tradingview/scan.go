package tradingview

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/investimentigrugno/fluxxo/internal/domain/models"
	"github.com/investimentigrugno/fluxxo/internal/logger"
	"github.com/investimentigrugno/fluxxo/internal/metrics"
	"github.com/investimentigrugno/fluxxo/internal/screener"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProviderName labels scanner calls in logs and metrics.
const ProviderName = "tradingview"

type filterExpr struct {
	Left      string `json:"left"`
	Operation string `json:"operation"`
	Right     any    `json:"right"`
}

type symbols struct {
	Query   symbolsQuery `json:"query"`
	Tickers []string     `json:"tickers"`
}

type symbolsQuery struct {
	Types []string `json:"types"`
}

type sortSpec struct {
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

type scanOptions struct {
	Lang string `json:"lang"`
}

// scanPayload is the body of POST /{market}/scan.
type scanPayload struct {
	Markets []string     `json:"markets"`
	Symbols symbols      `json:"symbols"`
	Options scanOptions  `json:"options"`
	Columns []string     `json:"columns"`
	Filter  []filterExpr `json:"filter"`
	Sort    *sortSpec    `json:"sort,omitempty"`
	Range   []int        `json:"range,omitempty"`
}

type scanRow struct {
	S string `json:"s"`
	D []any  `json:"d"`
}

type scanResponse struct {
	TotalCount int       `json:"totalCount"`
	Data       []scanRow `json:"data"`
}

// Execute runs q against the scanner. Each returned row carries the
// exchange-qualified symbol under screener.TickerField plus one key per
// requested field; null cells stay nil.
func (c *Client) Execute(ctx context.Context, q screener.Query) ([]models.Row, error) {
	payload, err := json.Marshal(encodeQuery(q, c.lang))
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	log := logger.With(ProviderName)
	start := time.Now()
	body, err := c.doRequest(ctx, scanPath(q.Markets), payload)
	metrics.ObserveUpstream(ProviderName, start, err)
	if err != nil {
		log.Debug().Err(err).Dur("duration", time.Since(start)).Msg("scanner request failed")
		return nil, err
	}

	var resp scanResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	rows := decodeRows(resp.Data, q.Fields)
	log.Debug().
		Int("total_count", resp.TotalCount).
		Int("rows", len(rows)).
		Dur("duration", time.Since(start)).
		Msg("scanner query executed")
	return rows, nil
}

// scanPath targets the market's own endpoint when the universe is a single
// market and the global endpoint otherwise.
func scanPath(markets []string) string {
	if len(markets) == 1 {
		return "/" + markets[0] + "/scan"
	}
	return "/global/scan"
}

func encodeQuery(q screener.Query, lang string) scanPayload {
	p := scanPayload{
		Markets: nonNil(q.Markets),
		Symbols: symbols{
			Query:   symbolsQuery{Types: []string{}},
			Tickers: nonNil(q.Tickers),
		},
		Options: scanOptions{Lang: lang},
		Columns: nonNil(q.Fields),
		Filter:  make([]filterExpr, 0, len(q.Predicates)),
	}
	for _, pred := range q.Predicates {
		p.Filter = append(p.Filter, encodePredicate(pred))
	}
	if q.SortField != "" {
		order := "asc"
		if q.SortDescending {
			order = "desc"
		}
		p.Sort = &sortSpec{SortBy: q.SortField, SortOrder: order}
	}
	if q.Limit > 0 {
		p.Range = []int{0, q.Limit}
	}
	return p
}

// encodePredicate maps a predicate to the scanner filter triple. Ranges and
// sets both travel as in_range; column operands travel as the column name.
func encodePredicate(p screener.Predicate) filterExpr {
	out := filterExpr{Left: p.Field, Operation: string(p.Op), Right: p.Operand}
	switch v := p.Operand.(type) {
	case screener.Range:
		out.Operation = string(screener.OpBetween)
		out.Right = []float64{v.Low, v.High}
	case []string:
		out.Operation = string(screener.OpBetween)
	case screener.Field:
		out.Right = string(v)
	}
	return out
}

func decodeRows(data []scanRow, fields []string) []models.Row {
	rows := make([]models.Row, 0, len(data))
	for _, d := range data {
		row := make(models.Row, len(fields)+1)
		row[screener.TickerField] = d.S
		for i, f := range fields {
			if i < len(d.D) {
				row[f] = d.D[i]
			} else {
				row[f] = nil
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
