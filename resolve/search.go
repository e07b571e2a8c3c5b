package resolve

import "github.com/poiesic/taxonomist/core"

// candidate is the best partial match seen so far.
type candidate struct {
	attempt Attempt
	page    *core.TaxonomyPage
	score   float64
}

// search broadens over the expanded and original term sets under the call
// budget. It returns a Strong or Weak outcome, or nil when the search is
// exhausted and the bridge should take over.
func (r *Resolver) search(rn *run, query, expanded []string) (*core.Outcome, error) {
	termSets := [][]string{expanded, query}
	if sameTerms(expanded, query) {
		termSets = [][]string{query}
	}
	plan := Plan{TermSets: termSets, Fields: r.fields, Fillers: r.fillers}

	budget := NewBudget(r.callBudget)
	var best *candidate

	for attempt := range plan.Attempts() {
		if err := rn.ctx.Err(); err != nil {
			return nil, err
		}
		if !budget.Spend() {
			// Exhaustion ends the search outright, weak candidates included
			rn.monitor.BudgetExhausted(stageSearch, budget.Used())
			r.logger.Debug("search budget exhausted", "used", budget.Used())
			return nil, nil
		}

		rn.monitor.BeforeAttempt(attempt)
		page := r.searchTaxonomy(rn, attempt.Field, attempt.Combination.Terms)
		if page == nil {
			continue
		}

		score := r.scorer.Score(page.Entries, query)
		if attempt.FullLength() || score >= r.threshold {
			return matchOutcome(core.OutcomeStrong, attempt, page, score), nil
		}

		if score > bestScore(best) {
			best = &candidate{attempt: attempt, page: page, score: score}
			rn.monitor.WeakCandidate(attempt, score)
		}
	}

	if best != nil {
		return matchOutcome(core.OutcomeWeak, best.attempt, best.page, best.score), nil
	}
	return nil, nil
}

func bestScore(c *candidate) float64 {
	if c == nil {
		return 0
	}
	return c.score
}

func matchOutcome(kind core.OutcomeKind, attempt Attempt, page *core.TaxonomyPage, score float64) *core.Outcome {
	return &core.Outcome{
		Kind:        kind,
		Entries:     page.Entries,
		Total:       page.Total,
		Score:       score,
		Combination: attempt.Combination.Terms,
		Field:       attempt.Field,
	}
}
