package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the case-folded form of a term used for matching.
// A Caser keeps state, so one is built per call.
func Fold(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

// Tokenize splits free text into terms on whitespace. Surrounding
// punctuation is trimmed and empty tokens are dropped; case is preserved.
func Tokenize(text string) []string {
	fields := strings.Fields(norm.NFKC.String(text))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// Words splits text into folded words for indexing and substring-free
// token matching. Any rune that is not a letter or digit separates words.
func Words(text string) []string {
	return strings.FieldsFunc(Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
