// Package render prints screener results as terminal tables for the CLI.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/investimentigrugno/fluxxo/internal/domain/models"
)

// DefaultScanColumns are shown when the caller does not pick columns.
var DefaultScanColumns = []string{
	"ticker", "description", "close", "change", "market_cap_basic", "RSI", "Recommend.All",
}

// Options tune table output.
type Options struct {
	Columns     []string
	Color       bool
	MaxColWidth int
}

var rightAligned = map[string]bool{
	"close": true, "change": true, "volume": true, "market_cap_basic": true,
	"RSI": true, "Recommend.All": true, "price_earnings_ttm": true,
	"InvestmentScore": true, "price": true,
}

// Scan writes rows as a table, one column per entry of opts.Columns.
func Scan(w io.Writer, rows []models.Row, opts Options) {
	cols := opts.Columns
	if len(cols) == 0 {
		cols = DefaultScanColumns
	}

	tw := newWriter(w)

	hdr := make(table.Row, len(cols))
	for i, c := range cols {
		hdr[i] = strings.ToUpper(c)
	}
	tw.AppendHeader(hdr)

	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for i, c := range cols {
		cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
		if rightAligned[c] {
			cfg.Align = text.AlignRight
			cfg.AlignHeader = text.AlignRight
		}
		cfgs = append(cfgs, cfg)
	}
	tw.SetColumnConfigs(cfgs)

	for _, r := range rows {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = Cell(c, r[c])
			if opts.Color && c == "change" {
				if v, ok := r.Float(c); ok {
					row[i] = colorize(v, row[i].(string))
				}
			}
		}
		tw.AppendRow(row)
	}
	tw.AppendFooter(table.Row{fmt.Sprintf("%d rows", len(rows))})
	tw.Render()
}

// TickerInfo writes a two-column key/value table.
func TickerInfo(w io.Writer, info models.TickerInfo) {
	tw := newWriter(w)
	tw.AppendRows([]table.Row{
		{"TICKER", info.Ticker},
		{"NAME", info.Name},
		{"PRICE", Cell("price", info.Price)},
		{"CURRENCY", info.Currency},
		{"SECTOR", info.Sector},
	})
	tw.Render()
}

func newWriter(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	return tw
}

// Cell formats one value for display. Missing values render as "-".
func Cell(column string, v any) string {
	switch n := v.(type) {
	case nil:
		return "-"
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return "-"
		}
		switch column {
		case "market_cap_basic", "volume":
			return humanize(n)
		case "change", "Perf.W", "Perf.1M":
			return fmt.Sprintf("%+.2f%%", n)
		}
		return fmt.Sprintf("%.2f", n)
	case int:
		return Cell(column, float64(n))
	case string:
		return n
	}
	return fmt.Sprint(v)
}

func humanize(n float64) string {
	abs := math.Abs(n)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2fT", n/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", n/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", n/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", n/1e3)
	}
	return fmt.Sprintf("%.0f", n)
}

func colorize(v float64, s string) string {
	switch {
	case v < 0:
		return text.Colors{text.FgRed}.Sprint(s)
	case v > 0:
		return text.Colors{text.FgGreen}.Sprint(s)
	}
	return s
}
