// Package screener builds declarative stock-screener queries and shapes
// their results.
//
// A Query names the market universe, the requested fields, a conjunction of
// predicates, a sort key and a row limit. Executors (the remote scanner or an
// offline fixture table) turn a Query into rows; Sanitize then scrubs
// missing-value markers before rows leave the process.
package screener

import (
	"context"
	"fmt"
	"slices"

	"github.com/investimentigrugno/fluxxo/internal/domain/models"
)

// Operator is a predicate comparison. Values match the scanner wire names
// except OpIn, which the wire encodes as in_range with a list operand.
type Operator string

const (
	OpGreater        Operator = "greater"
	OpGreaterOrEqual Operator = "egreater"
	OpLess           Operator = "less"
	OpLessOrEqual    Operator = "eless"
	OpEqual          Operator = "equal"
	OpNotEqual       Operator = "nequal"
	OpBetween        Operator = "in_range"
	OpIn             Operator = "in"
)

// Field references another column as a predicate operand ("close > SMA50").
type Field string

// Range is the inclusive operand of OpBetween.
type Range struct {
	Low  float64
	High float64
}

// Predicate is a single (field, operator, operand) condition. Operand is one
// of float64, bool, string, Field, Range or []string.
type Predicate struct {
	Field   string
	Op      Operator
	Operand any
}

func (p Predicate) String() string {
	switch v := p.Operand.(type) {
	case Range:
		return fmt.Sprintf("%s %s [%g, %g]", p.Field, p.Op, v.Low, v.High)
	case Field:
		return fmt.Sprintf("%s %s %s", p.Field, p.Op, string(v))
	default:
		return fmt.Sprintf("%s %s %v", p.Field, p.Op, v)
	}
}

// Column starts a predicate on a field: Col("RSI").Between(30, 80).
type Column string

// Col returns a Column for name.
func Col(name string) Column { return Column(name) }

func (c Column) pred(op Operator, v any) Predicate {
	return Predicate{Field: string(c), Op: op, Operand: normalizeOperand(v)}
}

func (c Column) Gt(v any) Predicate  { return c.pred(OpGreater, v) }
func (c Column) Gte(v any) Predicate { return c.pred(OpGreaterOrEqual, v) }
func (c Column) Lt(v any) Predicate  { return c.pred(OpLess, v) }
func (c Column) Lte(v any) Predicate { return c.pred(OpLessOrEqual, v) }
func (c Column) Eq(v any) Predicate  { return c.pred(OpEqual, v) }
func (c Column) Ne(v any) Predicate  { return c.pred(OpNotEqual, v) }

// Between matches values in the inclusive range [low, high].
func (c Column) Between(low, high float64) Predicate {
	return Predicate{Field: string(c), Op: OpBetween, Operand: Range{Low: low, High: high}}
}

// In matches string values contained in the set.
func (c Column) In(values ...string) Predicate {
	return Predicate{Field: string(c), Op: OpIn, Operand: slices.Clone(values)}
}

// normalizeOperand widens integer literals so the evaluator and the wire
// encoder only ever see float64 numbers.
func normalizeOperand(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case Column:
		return Field(n)
	}
	return v
}

// Query is the declarative description handed to an Executor. Builders
// return fresh values; executors must treat them as read-only.
type Query struct {
	Markets        []string
	Tickers        []string
	Fields         []string
	Predicates     []Predicate
	SortField      string
	SortDescending bool
	Limit          int
}

// Clone returns a deep copy of q.
func (q Query) Clone() Query {
	out := q
	out.Markets = slices.Clone(q.Markets)
	out.Tickers = slices.Clone(q.Tickers)
	out.Fields = slices.Clone(q.Fields)
	out.Predicates = slices.Clone(q.Predicates)
	return out
}

// Executor runs a Query against a data source and returns raw rows. Each
// row carries a "ticker" key plus the requested fields; values may still
// hold missing-value markers.
type Executor interface {
	Execute(ctx context.Context, q Query) ([]models.Row, error)
}

// TickerField is the key under which executors report the instrument id.
const TickerField = "ticker"
