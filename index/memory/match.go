package memory

import (
	"strings"

	"github.com/poiesic/taxonomist/core"
)

// matchesAll reports whether every word of every term prefixes some word of
// text. A term without words, or no terms at all, matches nothing.
func matchesAll(text string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	words := core.Words(text)
	for _, term := range terms {
		termWords := core.Words(term)
		if len(termWords) == 0 {
			return false
		}
		for _, tw := range termWords {
			if !hasWordWithPrefix(words, tw) {
				return false
			}
		}
	}
	return true
}

func hasWordWithPrefix(words []string, prefix string) bool {
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			return true
		}
	}
	return false
}
