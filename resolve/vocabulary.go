package resolve

import "github.com/poiesic/taxonomist/core"

// WordSet is an immutable set of folded words.
type WordSet struct {
	words map[string]struct{}
}

// NewWordSet builds a set from words, folding each one.
func NewWordSet(words ...string) WordSet {
	set := WordSet{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		set.words[core.Fold(w)] = struct{}{}
	}
	return set
}

// Contains reports whether the folded word is in the set.
func (s WordSet) Contains(word string) bool {
	_, ok := s.words[core.Fold(word)]
	return ok
}

// Len returns the number of words in the set.
func (s WordSet) Len() int {
	return len(s.words)
}

// Intersects reports whether any of the terms is in the set.
func (s WordSet) Intersects(terms []string) bool {
	for _, t := range terms {
		if s.Contains(t) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every term is in the set. It is false for no terms.
func (s WordSet) ContainsAll(terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	for _, t := range terms {
		if !s.Contains(t) {
			return false
		}
	}
	return true
}

// Filler words to strip before broadening
var defaultFillers = []string{
	"a", "an", "the", "for", "of", "and", "or", "to", "with", "in", "on", "by",
	"at", "from", "that", "which", "is", "are", "my", "your", "some", "used",
	"use", "using", "thing", "things", "kind", "type", "like", "something",
}

// Words that describe a device in general rather than what it is
var defaultGenericTerms = []string{
	"device", "devices", "system", "systems", "kit", "set", "unit", "tool",
	"instrument", "monitor", "accessory", "accessories", "machine", "equipment",
	"product", "apparatus", "component", "supplies", "medical",
}

// Terms whose queries rarely find a taxonomy entry by name
var defaultHighMissTerms = []string{
	"software", "app", "apps", "application", "ai", "algorithm", "digital",
	"cloud", "platform", "samd", "mobile", "wearable", "smartphone", "online",
}

// DefaultFillers returns the built-in filler words.
func DefaultFillers() WordSet {
	return NewWordSet(defaultFillers...)
}

// DefaultGenericTerms returns the built-in generic device words.
func DefaultGenericTerms() WordSet {
	return NewWordSet(defaultGenericTerms...)
}

// DefaultHighMissTerms returns the built-in high-miss-rate terms.
func DefaultHighMissTerms() WordSet {
	return NewWordSet(defaultHighMissTerms...)
}
