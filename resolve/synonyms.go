package resolve

import (
	"strings"

	"github.com/poiesic/taxonomist/core"
)

// SynonymTable maps an informal term to the formal phrases that replace it.
// Keys are folded on construction and the table is never modified afterwards.
type SynonymTable struct {
	entries map[string][]string
}

// NewSynonymTable builds a table from a term to phrases mapping.
// Phrases of keys that fold to the same term are concatenated in key order.
func NewSynonymTable(m map[string][]string) *SynonymTable {
	t := &SynonymTable{entries: make(map[string][]string, len(m))}
	for _, key := range sortedKeys(m) {
		folded := core.Fold(strings.TrimSpace(key))
		if folded == "" {
			continue
		}
		t.entries[folded] = append(t.entries[folded], m[key]...)
	}
	return t
}

// With returns a new table with extra entries added. Extra phrases replace
// any existing phrases for the same term.
func (t *SynonymTable) With(extra map[string][]string) *SynonymTable {
	merged := make(map[string][]string, len(t.entries)+len(extra))
	for k, v := range t.entries {
		merged[k] = v
	}
	for _, key := range sortedKeys(extra) {
		merged[core.Fold(strings.TrimSpace(key))] = extra[key]
	}
	return NewSynonymTable(merged)
}

// Lookup returns the phrases for a term. The returned slice is a copy.
func (t *SynonymTable) Lookup(term string) ([]string, bool) {
	phrases, ok := t.entries[core.Fold(term)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), phrases...), true
}

// Len returns the number of terms in the table.
func (t *SynonymTable) Len() int {
	return len(t.entries)
}

// Expand replaces each term with the words of its phrases, or keeps the
// term when the table has no entry. Words are deduplicated
// case-insensitively in order of first appearance.
func (t *SynonymTable) Expand(terms []string) []string {
	expanded := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))

	add := func(word string) {
		folded := core.Fold(word)
		if folded == "" || seen[folded] {
			return
		}
		seen[folded] = true
		expanded = append(expanded, word)
	}

	for _, term := range terms {
		phrases, ok := t.entries[core.Fold(term)]
		if !ok {
			add(term)
			continue
		}
		for _, phrase := range phrases {
			for _, word := range strings.Fields(phrase) {
				add(word)
			}
		}
	}
	return expanded
}

// matchSet returns the folded term plus the folded words of its expansion.
func (t *SynonymTable) matchSet(term string) []string {
	folded := core.Fold(term)
	set := []string{folded}
	for _, phrase := range t.entries[folded] {
		for _, word := range strings.Fields(phrase) {
			if w := core.Fold(word); w != folded {
				set = append(set, w)
			}
		}
	}
	return set
}

// sameTerms reports whether two sequences are equal ignoring case.
func sameTerms(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if core.Fold(a[i]) != core.Fold(b[i]) {
			return false
		}
	}
	return true
}
