package resolve

import "iter"

// Attempt is one planned query: a combination of one term set searched in one field.
type Attempt struct {
	TermSet     int      // Index of the term set in the plan
	Terms       []string // The term set after filler removal
	Combination Combination
	Field       string
}

// FullLength reports whether the combination uses every term of its term set.
func (a Attempt) FullLength() bool {
	return a.Combination.Size() == len(a.Terms)
}

// Plan describes the broadening search over one or more term sets.
type Plan struct {
	TermSets [][]string
	Fields   []string
	Fillers  WordSet
}

// Attempts lazily yields the plan's attempts in dispatch order: term set by
// term set, combination by combination, field by field. The sequence is
// finite, has no side effects and starts over on every range.
func (p Plan) Attempts() iter.Seq[Attempt] {
	return func(yield func(Attempt) bool) {
		for i, set := range p.TermSets {
			terms := FilterFillers(set, p.Fillers)
			for combo := range Combinations(terms) {
				for _, field := range p.Fields {
					if !yield(Attempt{TermSet: i, Terms: terms, Combination: combo, Field: field}) {
						return
					}
				}
			}
		}
	}
}
