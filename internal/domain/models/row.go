package models

// Row is one record returned by the screener: field name to value.
// Values are strings, numbers, booleans or nil once sanitized.
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Float returns the value of key as float64. Missing, nil and non-numeric
// values report ok=false.
func (r Row) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	}
	return 0, false
}

// String returns the value of key when it is a string.
func (r Row) String(key string) string {
	s, _ := r[key].(string)
	return s
}
