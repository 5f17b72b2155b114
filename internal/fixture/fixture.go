// Package fixture executes screener queries against a local table loaded
// with gota. It backs SCREENER_BACKEND=fixture and the service tests, so a
// query runs end to end without the remote scanner.
//
// Empty or null numeric cells surface as NaN, the same missing-value marker
// the remote scanner produces, so rows still need screener.Sanitize.
package fixture

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/investimentigrugno/fluxxo/internal/domain/models"
	"github.com/investimentigrugno/fluxxo/internal/logger"
	"github.com/investimentigrugno/fluxxo/internal/screener"
)

// MarketField is the optional column holding a row's market code.
const MarketField = "market"

// Format is the encoding of a fixture table.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Executor answers queries from an in-memory table. It is read-only after
// construction and safe for concurrent use.
type Executor struct {
	df   dataframe.DataFrame
	rows []models.Row
}

// Load reads a .json (array of objects) or .csv table from path.
func Load(path string) (*Executor, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".csv":
		format = FormatCSV
	default:
		return nil, fmt.Errorf("fixture %s: unsupported extension", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	ex, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	log := logger.With("fixture")
	log.Info().Str("path", path).Int("rows", ex.Len()).Msg("fixture loaded")
	return ex, nil
}

// Read parses a table from r.
func Read(r io.Reader, format Format) (*Executor, error) {
	var df dataframe.DataFrame
	switch format {
	case FormatJSON:
		df = dataframe.ReadJSON(r)
	case FormatCSV:
		df = dataframe.ReadCSV(r)
	default:
		return nil, fmt.Errorf("unknown fixture format %q", format)
	}
	if df.Err != nil {
		return nil, fmt.Errorf("parse table: %w", df.Err)
	}
	return New(df)
}

// New wraps an existing dataframe. The frame must carry a ticker column.
func New(df dataframe.DataFrame) (*Executor, error) {
	if !slices.Contains(df.Names(), screener.TickerField) {
		return nil, fmt.Errorf("table has no %q column", screener.TickerField)
	}
	return &Executor{df: df, rows: toRows(df)}, nil
}

// Len returns the number of rows in the table.
func (e *Executor) Len() int { return e.df.Nrow() }

// Execute applies the market and ticker scope, the predicates, the sort
// and the limit of q, then projects every row onto ticker plus q.Fields.
func (e *Executor) Execute(ctx context.Context, q screener.Query) ([]models.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx := make([]int, 0)
	for i, row := range e.rows {
		if inScope(row, q) && screener.Match(row, q.Predicates) {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return []models.Row{}, nil
	}

	sub := e.df.Subset(idx)
	if q.SortField != "" && slices.Contains(sub.Names(), q.SortField) {
		order := dataframe.Sort(q.SortField)
		if q.SortDescending {
			order = dataframe.RevSort(q.SortField)
		}
		sub = sub.Arrange(order)
	}
	if sub.Err != nil {
		return nil, fmt.Errorf("fixture query: %w", sub.Err)
	}

	rows := toRows(sub)
	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}
	out := make([]models.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, project(r, q.Fields))
	}
	return out, nil
}

func inScope(row models.Row, q screener.Query) bool {
	if len(q.Tickers) > 0 {
		t := row.String(screener.TickerField)
		if !slices.ContainsFunc(q.Tickers, func(s string) bool { return strings.EqualFold(s, t) }) {
			return false
		}
	}
	if len(q.Markets) > 0 {
		if m, ok := row[MarketField].(string); ok && !slices.Contains(q.Markets, m) {
			return false
		}
	}
	return true
}

func project(row models.Row, fields []string) models.Row {
	out := make(models.Row, len(fields)+1)
	out[screener.TickerField] = row[screener.TickerField]
	for _, f := range fields {
		v, ok := row[f]
		if !ok {
			v = nil
		}
		out[f] = v
	}
	return out
}

// toRows converts the frame column by column. Missing numeric cells become
// NaN and missing text or boolean cells become nil.
func toRows(df dataframe.DataFrame) []models.Row {
	n := df.Nrow()
	rows := make([]models.Row, n)
	for i := range rows {
		rows[i] = make(models.Row, df.Ncol())
	}
	for _, name := range df.Names() {
		col := df.Col(name)
		numeric := col.Type() == series.Float || col.Type() == series.Int
		for i := 0; i < n; i++ {
			el := col.Elem(i)
			switch {
			case el.IsNA() && numeric:
				rows[i][name] = math.NaN()
			case el.IsNA():
				rows[i][name] = nil
			default:
				rows[i][name] = el.Val()
			}
		}
	}
	return rows
}
