// Package match pairs submitted student answers with marking-guide questions
// under ambiguous or missing numbering. Everything in this package is a pure
// function: safe to call concurrently, no shared state.
package match

import "unicode"

// Normalize prepares text for comparison: whitespace runs collapse to a
// single space, leading/trailing space is trimmed, non-alphanumeric runes are
// stripped, and everything is lowercased.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = false
			out = append(out, unicode.ToLower(r))
		default:
			// Punctuation and symbols are dropped entirely.
		}
	}
	return string(out)
}
