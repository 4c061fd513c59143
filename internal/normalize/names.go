package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var multiSpace = regexp.MustCompile(`\s+`)

// CleanHeader trims a column header and collapses internal whitespace.
func CleanHeader(s string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// SnakeHeader lowercases a header and replaces spaces with underscores,
// the convention used by the roster feed ("Doctor Name" -> "doctor_name").
func SnakeHeader(s string) string {
	return strings.ReplaceAll(strings.ToLower(CleanHeader(s)), " ", "_")
}

// TitleCase uppercases the first letter of each word and lowercases the
// rest, so drug names compare consistently ("aBC drug" -> "Abc Drug").
func TitleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// FoldEqual reports case-insensitive equality of the trimmed inputs. Scope
// predicates use exact folded equality only, never substring matching.
func FoldEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
