package validate

import "encoding/json"

// asNumber extracts a numeric value from a payload attribute. Booleans and
// numeric strings do not satisfy the check.
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// asInteger extracts an integer value from a payload attribute. JSON numbers
// qualify only when written without a fractional part: 25 is an integer,
// 25.0 is not. Booleans and floating-point values never qualify.
func asInteger(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		i, err := v.Int64()
		return i, err == nil
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}
