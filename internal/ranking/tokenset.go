// Package ranking scores extracted resume features against job requirements
// and orders batches of candidates by fit.
package ranking

import "strings"

// Tokens splits text into lowercase alphanumeric tokens. Anything that is not
// an ASCII letter or digit separates tokens.
func Tokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

// TokenSet returns the set of unique tokens in text.
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range Tokens(text) {
		set[token] = struct{}{}
	}
	return set
}
