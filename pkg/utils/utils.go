package utils

import (
	"strconv"
	"strings"
)

// SafeFloat converts a loosely typed provider value to float64. Brokerage
// responses carry numbers as strings and omit fields freely, so any value
// that does not parse falls back to def.
func SafeFloat(value interface{}, def float64) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if v == "" {
			return def
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return def
		}
		return f
	case nil:
		return def
	default:
		return def
	}
}

// NormalizeSymbol uppercases a ticker symbol and strips surrounding whitespace.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// TruncateText shortens text to maxLength runes, appending an ellipsis when
// truncation happens.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}

// ContainsString checks if a slice of strings contains a specific string.
func ContainsString(slice []string, str string) bool {
	for _, item := range slice {
		if item == str {
			return true
		}
	}
	return false
}
