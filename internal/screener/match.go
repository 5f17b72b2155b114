package screener

import (
	"math"
	"slices"

	"github.com/investimentigrugno/fluxxo/internal/domain/models"
)

// Match reports whether row satisfies every predicate. A predicate whose
// field or operand is missing (absent, nil or NaN) never matches, the same
// way the scanner drops rows with null columns.
func Match(row models.Row, preds []Predicate) bool {
	for _, p := range preds {
		if !Eval(row, p) {
			return false
		}
	}
	return true
}

// Eval evaluates a single predicate against row.
func Eval(row models.Row, p Predicate) bool {
	switch operand := p.Operand.(type) {
	case float64:
		v, ok := number(row, p.Field)
		return ok && compare(v, p.Op, operand)
	case Field:
		v, ok := number(row, p.Field)
		if !ok {
			return false
		}
		other, ok := number(row, string(operand))
		return ok && compare(v, p.Op, other)
	case Range:
		v, ok := number(row, p.Field)
		return ok && p.Op == OpBetween && v >= operand.Low && v <= operand.High
	case bool:
		v, ok := row[p.Field].(bool)
		if !ok {
			return false
		}
		switch p.Op {
		case OpEqual:
			return v == operand
		case OpNotEqual:
			return v != operand
		}
	case string:
		v, ok := row[p.Field].(string)
		if !ok {
			return false
		}
		switch p.Op {
		case OpEqual:
			return v == operand
		case OpNotEqual:
			return v != operand
		}
	case []string:
		v, ok := row[p.Field].(string)
		return ok && p.Op == OpIn && slices.Contains(operand, v)
	}
	return false
}

func number(row models.Row, key string) (float64, bool) {
	v, ok := row.Float(key)
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func compare(v float64, op Operator, operand float64) bool {
	switch op {
	case OpGreater:
		return v > operand
	case OpGreaterOrEqual:
		return v >= operand
	case OpLess:
		return v < operand
	case OpLessOrEqual:
		return v <= operand
	case OpEqual:
		return v == operand
	case OpNotEqual:
		return v != operand
	}
	return false
}
