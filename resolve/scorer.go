package resolve

import (
	"strings"

	"github.com/poiesic/taxonomist/core"
)

// Scorer measures how much of a query shows up in a set of candidates.
type Scorer struct {
	synonyms *SynonymTable
}

// NewScorer creates a scorer that also accepts synonym expansions as matches.
func NewScorer(synonyms *SynonymTable) *Scorer {
	if synonyms == nil {
		synonyms = NewSynonymTable(nil)
	}
	return &Scorer{synonyms: synonyms}
}

// Score returns the mean, over entries, of the fraction of original terms
// covered by the entry's searchable text. A term is covered when it, or a word
// of its synonym expansion, occurs as a substring of the text. Returns 0 when
// either input is empty.
func (s *Scorer) Score(entries []*core.TaxonomyEntry, terms []string) float64 {
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.SearchableText()
	}
	return s.ScoreTexts(texts, terms)
}

// ScoreTexts is Score over raw candidate texts.
func (s *Scorer) ScoreTexts(texts []string, terms []string) float64 {
	if len(texts) == 0 || len(terms) == 0 {
		return 0
	}

	matchSets := make([][]string, len(terms))
	for i, term := range terms {
		matchSets[i] = s.synonyms.matchSet(term)
	}

	var total float64
	for _, text := range texts {
		folded := core.Fold(text)
		covered := 0
		for _, set := range matchSets {
			for _, word := range set {
				if word != "" && strings.Contains(folded, word) {
					covered++
					break
				}
			}
		}
		total += float64(covered) / float64(len(terms))
	}
	return total / float64(len(texts))
}
