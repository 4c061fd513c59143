package normalize

import (
	"strconv"
	"strings"
)

var currencyStripper = strings.NewReplacer("$", "", ",", "")

// ParseCurrency parses a currency-like cell ("$1,234.50") into a float64.
// Values that fail numeric coercion become 0, so a malformed price never
// poisons a load.
func ParseCurrency(s string) float64 {
	s = strings.TrimSpace(currencyStripper.Replace(s))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseNumber parses a plain numeric cell, returning def on empty or
// malformed input (e.g. infusion counts default to 1).
func ParseNumber(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
