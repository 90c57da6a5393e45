package mapper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseNumber reads the leading decimal number of value. Empty, blank or
// unparseable text yields 0, as do values that overflow to infinity.
func parseNumber(value string) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}

	match := leadingFloat.FindString(trimmed)
	if match == "" {
		return 0
	}

	n, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0
	}
	return n
}

func field(row map[string]string, key string) string {
	return strings.TrimSpace(row[key])
}
