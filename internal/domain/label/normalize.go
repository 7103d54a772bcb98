package label

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NormalizeDate keeps only the date part of an ISO-8601 timestamp.
// Values without a 'T' separator pass through unchanged.
func NormalizeDate(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// RoundWeight coerces a weight value to a non-negative whole number string.
// Halves round up. Missing, unparseable and negative values yield "0".
// Numeric strings may use a decimal comma.
func RoundWeight(v any) string {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return "0"
		}
		f = parsed
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", ".")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "0"
		}
		f = parsed
	default:
		return "0"
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return "0"
	}
	return strconv.FormatFloat(math.Floor(f+0.5), 'f', 0, 64)
}

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// FlattenNotes replaces line breaks with single spaces. Length is not bounded.
func FlattenNotes(s string) string {
	return newlineReplacer.Replace(s)
}
