package screener

import (
	"math"

	"github.com/investimentigrugno/fluxxo/internal/domain/models"
)

// IsMissing reports whether v is a missing-value marker: nil, or a float
// that is NaN or infinite. Infinities count as missing because JSON has no
// representation for them.
func IsMissing(v any) bool {
	switch n := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(n) || math.IsInf(n, 0)
	case float32:
		f := float64(n)
		return math.IsNaN(f) || math.IsInf(f, 0)
	}
	return false
}

// SanitizeRow returns a copy of row with every missing-value marker replaced
// by nil. Other values pass through unchanged.
func SanitizeRow(row models.Row) models.Row {
	out := make(models.Row, len(row))
	for k, v := range row {
		if IsMissing(v) {
			out[k] = nil
			continue
		}
		out[k] = v
	}
	return out
}

// Sanitize applies SanitizeRow to every row. The result is never nil.
func Sanitize(rows []models.Row) []models.Row {
	out := make([]models.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, SanitizeRow(r))
	}
	return out
}
