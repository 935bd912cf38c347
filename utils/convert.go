package utils

import (
	"strconv"
)

// ToFloat64 converts i to float64. ok is false when i is nil or not numeric.
func ToFloat64(i interface{}) (float64, bool) {
	switch value := i.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case string:
		f, err := strconv.ParseFloat(value, 64)
		return f, err == nil
	case []byte:
		f, err := strconv.ParseFloat(string(value), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// FormatFloat is the text form used to store double feature values.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
