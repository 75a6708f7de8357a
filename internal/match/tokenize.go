package match

import (
	"strings"
	"unicode"
)

// minTokenLength filters out short stopword-like tokens during keyword
// fallback matching.
const minTokenLength = 3

// tokenize splits text into lowercase alphanumeric tokens of length >= 3,
// deduplicated with first-occurrence order preserved.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool, len(fields))
	var tokens []string
	for _, f := range fields {
		if len(f) < minTokenLength || seen[f] {
			continue
		}
		seen[f] = true
		tokens = append(tokens, f)
	}
	return tokens
}
