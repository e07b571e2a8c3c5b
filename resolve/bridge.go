package resolve

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/taxonomist/core"
)

const (
	// maxBridgeCombinations is how many multi-term combinations one term set contributes.
	maxBridgeCombinations = 8
	// minSpecificTermLength is the rune length a lone specific term needs to be queried.
	minSpecificTermLength = 5
	maxBridgeExamples     = 5
	maxCorpusSamples      = 10
)

// bridgeQueries builds the corpus queries for the bridge stage. Fillers are
// dropped and specific terms are placed ahead of generic ones before
// combinations are drawn. Queries repeated across term sets are skipped.
func (r *Resolver) bridgeQueries(query, expanded []string) [][]string {
	termSets := [][]string{expanded, query}
	if sameTerms(expanded, query) {
		termSets = [][]string{query}
	}

	seen := make(map[string]bool)
	var queries [][]string
	add := func(terms []string) {
		key := termSetKey(terms)
		if seen[key] {
			return
		}
		seen[key] = true
		queries = append(queries, terms)
	}

	for _, set := range termSets {
		var specific, generic []string
		for _, t := range FilterFillers(set, r.fillers) {
			if r.generic.Contains(t) {
				generic = append(generic, t)
			} else {
				specific = append(specific, t)
			}
		}
		ordered := append(slices.Clone(specific), generic...)

		taken := 0
		for combo := range Combinations(ordered) {
			if combo.Size() < 2 || taken == maxBridgeCombinations {
				break
			}
			if r.generic.ContainsAll(combo.Terms) {
				continue
			}
			add(combo.Terms)
			taken++
		}

		for _, t := range specific {
			if utf8.RuneCountInString(t) >= minSpecificTermLength {
				add([]string{t})
			}
		}
	}
	return queries
}

// termSetKey identifies a term set regardless of order and case.
func termSetKey(terms []string) string {
	folded := make([]string, len(terms))
	for i, t := range terms {
		folded[i] = core.Fold(t)
	}
	slices.Sort(folded)
	return strings.Join(folded, "\x00")
}

// codeHit aggregates the corpus records carrying one taxonomy code.
type codeHit struct {
	code        string
	occurrences int
	examples    []string
}

// groupByCode collects the distinct codes of a corpus page, most frequent
// first, ties in order of first appearance.
func groupByCode(records []*core.CorpusRecord) []*codeHit {
	var hits []*codeHit
	byCode := make(map[string]*codeHit)
	for _, rec := range records {
		code := strings.TrimSpace(rec.Code)
		if code == "" {
			continue
		}
		hit, ok := byCode[code]
		if !ok {
			hit = &codeHit{code: code}
			byCode[code] = hit
			hits = append(hits, hit)
		}
		hit.occurrences++
		if len(hit.examples) < maxBridgeExamples && rec.Name != "" && !slices.Contains(hit.examples, rec.Name) {
			hit.examples = append(hit.examples, rec.Name)
		}
	}
	slices.SortStableFunc(hits, func(a, b *codeHit) int {
		return cmp.Compare(b.occurrences, a.occurrences)
	})
	return hits
}

// bridge recovers taxonomy codes through the corpus. It returns a Bridged
// outcome for the first corpus query whose codes resolve, or nil.
func (r *Resolver) bridge(rn *run, query, expanded []string) (*core.Outcome, error) {
	budget := NewBudget(r.bridgeBudget)

	for _, terms := range r.bridgeQueries(query, expanded) {
		if err := rn.ctx.Err(); err != nil {
			return nil, err
		}
		if !budget.Spend() {
			rn.monitor.BudgetExhausted(stageBridge, budget.Used())
			r.logger.Debug("bridge budget exhausted", "used", budget.Used())
			return nil, nil
		}

		rn.monitor.BeforeBridgeQuery(terms)
		page := r.searchCorpus(rn, terms)
		if page == nil {
			continue
		}

		hits := groupByCode(page.Records)
		if len(hits) > r.maxBridgeCodes {
			hits = hits[:r.maxBridgeCodes]
		}

		var bridged []core.BridgedEntry
		for _, hit := range hits {
			if err := rn.ctx.Err(); err != nil {
				return nil, err
			}
			if !budget.Spend() {
				break
			}
			entry := r.lookup(rn, hit.code)
			if entry == nil || !rn.filters.Matches(entry) {
				continue
			}
			bridged = append(bridged, core.BridgedEntry{
				Entry:       entry,
				Occurrences: hit.occurrences,
				Examples:    hit.examples,
			})
		}

		if len(bridged) > 0 {
			return bridgedOutcome(terms, bridged, page.Records), nil
		}
		if budget.Exhausted() {
			rn.monitor.BudgetExhausted(stageBridge, budget.Used())
			return nil, nil
		}
	}
	return nil, nil
}

func bridgedOutcome(terms []string, bridged []core.BridgedEntry, records []*core.CorpusRecord) *core.Outcome {
	entries := make([]*core.TaxonomyEntry, len(bridged))
	for i, b := range bridged {
		entries[i] = b.Entry
	}
	samples := records
	if len(samples) > maxCorpusSamples {
		samples = samples[:maxCorpusSamples]
	}
	return &core.Outcome{
		Kind:          core.OutcomeBridged,
		Entries:       entries,
		Total:         len(entries),
		Bridged:       bridged,
		BridgeQuery:   terms,
		CorpusSamples: slices.Clone(samples),
	}
}
