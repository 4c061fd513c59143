package normalize

import (
	"strconv"
	"strings"
)

// NormalizeNPI canonicalizes a National Provider Identifier cell into a bare
// digit string. Spreadsheet exports frequently render NPIs as floats
// ("1234567890.0"); those collapse to the integer form. Returns "" when the
// cell holds no digits.
func NormalizeNPI(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatInt(int64(f), 10)
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
