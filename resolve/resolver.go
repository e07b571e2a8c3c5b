package resolve

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/google/uuid"
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/index"
)

const (
	// DefaultCallBudget caps external calls of the direct search stage.
	DefaultCallBudget = 30
	// DefaultBridgeBudget caps external calls of the bridge stage.
	DefaultBridgeBudget = 30
	// DefaultRelevanceThreshold is the coverage at which a partial match counts as strong.
	DefaultRelevanceThreshold = 0.4
	// DefaultMaxBridgeCodes caps the codes looked up for one corpus hit.
	DefaultMaxBridgeCodes = 10
)

// DefaultCodePattern matches taxonomy code literals such as "DQA".
var DefaultCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// DefaultFields are the taxonomy fields searched, in priority order.
var DefaultFields = []string{core.FieldName, core.FieldDefinition}

// Resolver maps free-text queries onto taxonomy entries.
type Resolver struct {
	taxonomy       index.TaxonomyIndex
	corpus         index.CorpusIndex
	synonyms       *SynonymTable
	scorer         *Scorer
	suggester      *Suggester
	fillers        WordSet
	generic        WordSet
	highMiss       WordSet
	fields         []string
	corpusField    string
	callBudget     int
	bridgeBudget   int
	threshold      float64
	maxBridgeCodes int
	codePattern    *regexp.Regexp
	logger         *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithSynonyms replaces the synonym table.
func WithSynonyms(table *SynonymTable) Option {
	return func(r *Resolver) error {
		if table == nil {
			table = NewSynonymTable(nil)
		}
		r.synonyms = table
		return nil
	}
}

// WithFillers replaces the filler words removed before broadening.
func WithFillers(fillers WordSet) Option {
	return func(r *Resolver) error {
		r.fillers = fillers
		return nil
	}
}

// WithGenericTerms replaces the generic words used to shape bridge queries.
func WithGenericTerms(generic WordSet) Option {
	return func(r *Resolver) error {
		r.generic = generic
		return nil
	}
}

// WithHighMissTerms replaces the terms that select the software suggestion.
func WithHighMissTerms(terms WordSet) Option {
	return func(r *Resolver) error {
		r.highMiss = terms
		return nil
	}
}

// WithCallBudget sets the maximum number of calls of the direct search stage.
func WithCallBudget(budget int) Option {
	return func(r *Resolver) error {
		if budget < 0 {
			return ErrInvalidBudget
		}
		r.callBudget = budget
		return nil
	}
}

// WithBridgeBudget sets the maximum number of calls of the bridge stage.
func WithBridgeBudget(budget int) Option {
	return func(r *Resolver) error {
		if budget < 0 {
			return ErrInvalidBudget
		}
		r.bridgeBudget = budget
		return nil
	}
}

// WithRelevanceThreshold sets the coverage at which a partial match is accepted as strong.
func WithRelevanceThreshold(threshold float64) Option {
	return func(r *Resolver) error {
		if threshold < 0 || threshold > 1 {
			return ErrInvalidThreshold
		}
		r.threshold = threshold
		return nil
	}
}

// WithFields sets the taxonomy fields searched, in priority order.
func WithFields(fields ...string) Option {
	return func(r *Resolver) error {
		if len(fields) == 0 {
			return ErrFieldsRequired
		}
		r.fields = append([]string(nil), fields...)
		return nil
	}
}

// WithCorpusField sets the corpus field bridge queries are restricted to.
func WithCorpusField(field string) Option {
	return func(r *Resolver) error {
		if field == "" {
			return ErrFieldsRequired
		}
		r.corpusField = field
		return nil
	}
}

// WithCodePattern sets the pattern recognizing taxonomy code literals.
func WithCodePattern(pattern *regexp.Regexp) Option {
	return func(r *Resolver) error {
		if pattern == nil {
			pattern = DefaultCodePattern
		}
		r.codePattern = pattern
		return nil
	}
}

// WithMaxBridgeCodes caps the codes looked up for one corpus hit.
func WithMaxBridgeCodes(n int) Option {
	return func(r *Resolver) error {
		if n < 1 {
			return ErrInvalidMaxBridgeCodes
		}
		r.maxBridgeCodes = n
		return nil
	}
}

// NewResolver creates a new resolver.
func NewResolver(taxonomy index.TaxonomyIndex, corpus index.CorpusIndex, opts ...Option) (*Resolver, error) {
	if taxonomy == nil {
		return nil, ErrTaxonomyIndexRequired
	}
	if corpus == nil {
		return nil, ErrCorpusIndexRequired
	}

	r := &Resolver{
		taxonomy:       taxonomy,
		corpus:         corpus,
		synonyms:       DefaultSynonyms(),
		fillers:        DefaultFillers(),
		generic:        DefaultGenericTerms(),
		highMiss:       DefaultHighMissTerms(),
		fields:         append([]string(nil), DefaultFields...),
		corpusField:    core.FieldName,
		callBudget:     DefaultCallBudget,
		bridgeBudget:   DefaultBridgeBudget,
		threshold:      DefaultRelevanceThreshold,
		maxBridgeCodes: DefaultMaxBridgeCodes,
		codePattern:    DefaultCodePattern,
		logger:         slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	r.scorer = NewScorer(r.synonyms)
	r.suggester = NewSuggester(r.highMiss)

	return r, nil
}

// Synonyms returns the resolver's synonym table.
func (r *Resolver) Synonyms() *SynonymTable {
	return r.synonyms
}

// run holds the state of one resolution.
type run struct {
	ctx     context.Context
	filters core.Filters
	monitor Monitor
	calls   []core.Call
}

// Resolve maps a free-text query onto taxonomy entries.
// The only error returned is the context's, when it ends mid-resolution;
// search failures are recorded on the outcome's calls instead.
//
// The taxonomy search and the corpus bridge each have their own budget, so
// one resolution issues at most the call budget plus the bridge budget
// external calls (60 with the defaults). A bridge budget of zero turns the
// bridge off and keeps the total at the call budget.
func (r *Resolver) Resolve(ctx context.Context, query string, filters core.Filters) (*core.Outcome, error) {
	return r.ResolveWithMonitor(ctx, query, filters, nil)
}

// ResolveWithMonitor is Resolve with a monitor that receives callbacks at each stage.
func (r *Resolver) ResolveWithMonitor(ctx context.Context, query string, filters core.Filters, monitor Monitor) (*core.Outcome, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	terms := core.Tokenize(query)
	monitor.Start(terms)

	rn := &run{ctx: ctx, filters: filters, monitor: monitor}
	outcome, err := r.resolve(rn, terms)
	if err != nil {
		r.logger.Debug("resolution aborted", "query", query, "calls", len(rn.calls), "err", err)
		return nil, err
	}

	outcome.ID = uuid.NewString()
	outcome.Query = terms
	outcome.Calls = rn.calls
	r.logger.Debug("resolution finished", "query", query, "kind", outcome.Kind.String(), "calls", len(rn.calls))

	monitor.Finish(outcome)
	return outcome, nil
}

func (r *Resolver) resolve(rn *run, terms []string) (*core.Outcome, error) {
	if len(terms) == 0 {
		return r.unresolved(terms, nil), nil
	}

	// 1. Code literals go straight to the taxonomy
	if len(terms) == 1 && r.codePattern.MatchString(terms[0]) {
		return r.direct(rn, terms[0])
	}

	// 2. Broaden over expanded and original terms
	expanded := r.synonyms.Expand(terms)
	rn.monitor.AfterExpansion(expanded)

	outcome, err := r.search(rn, terms, expanded)
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		outcome.Expanded = expanded
		return outcome, nil
	}

	// 3. Fall back to the corpus bridge
	outcome, err = r.bridge(rn, terms, expanded)
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		outcome.Expanded = expanded
		return outcome, nil
	}

	return r.unresolved(terms, expanded), nil
}

func (r *Resolver) direct(rn *run, code string) (*core.Outcome, error) {
	budget := NewBudget(r.callBudget)
	if !budget.Spend() {
		rn.monitor.BudgetExhausted(stageDirect, budget.Used())
		return r.unresolved([]string{code}, nil), nil
	}
	if err := rn.ctx.Err(); err != nil {
		return nil, err
	}

	entry := r.lookup(rn, code)
	if entry == nil {
		return r.unresolved([]string{code}, nil), nil
	}
	return &core.Outcome{
		Kind:        core.OutcomeDirect,
		Entries:     []*core.TaxonomyEntry{entry},
		Total:       1,
		Score:       1,
		Combination: []string{code},
		Field:       core.FieldCode,
	}, nil
}

func (r *Resolver) unresolved(terms, expanded []string) *core.Outcome {
	return &core.Outcome{
		Kind:       core.OutcomeUnresolved,
		Expanded:   expanded,
		Suggestion: r.suggester.Suggest(terms),
	}
}
