package validate

import (
	"fmt"
	"strconv"
)

// IsEmpty reports whether a value counts as empty: nil or the empty
// string. Zero, false, and empty slices are present values. The same
// emptiness definition drives required checks and completion counting.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

// toString converts a value to the string form used by length and
// pattern checks.
func toString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toNumber converts a value to float64 for min/max checks. The second
// return is false for values that are not numeric; those skip the
// min/max rules entirely.
func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// formatBound renders a numeric bound for messages without exponent
// notation: 5 stays "5", 5.5 stays "5.5".
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
