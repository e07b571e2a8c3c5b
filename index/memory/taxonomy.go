package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/index"
)

// SearchCall records the arguments of one Search invocation.
type SearchCall struct {
	Field   string
	Terms   []string
	Filters core.Filters
}

// Taxonomy is an in-memory index.TaxonomyIndex.
type Taxonomy struct {
	// SearchFunc is called by Search if set.
	SearchFunc func(ctx context.Context, field string, terms []string, filters core.Filters) (*core.TaxonomyPage, error)

	// LookupFunc is called by LookupByCode if set.
	LookupFunc func(ctx context.Context, code string) (*core.TaxonomyEntry, error)

	mu       sync.Mutex
	entries  []*core.TaxonomyEntry
	searches []SearchCall
	lookups  []string
}

var _ index.TaxonomyIndex = (*Taxonomy)(nil)

// NewTaxonomy creates an index holding the given entries.
func NewTaxonomy(entries ...*core.TaxonomyEntry) *Taxonomy {
	return &Taxonomy{entries: entries}
}

// Add appends entries to the index.
func (t *Taxonomy) Add(entries ...*core.TaxonomyEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entries...)
}

func (t *Taxonomy) Search(ctx context.Context, field string, terms []string, filters core.Filters) (*core.TaxonomyPage, error) {
	t.mu.Lock()
	t.searches = append(t.searches, SearchCall{Field: field, Terms: append([]string(nil), terms...), Filters: filters})
	t.mu.Unlock()

	if t.SearchFunc != nil {
		return t.SearchFunc(ctx, field, terms, filters)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	page := &core.TaxonomyPage{}
	for _, e := range t.entries {
		if matchesAll(e.FieldValue(field), terms) && filters.Matches(e) {
			page.Entries = append(page.Entries, e)
		}
	}
	page.Total = len(page.Entries)
	return page, nil
}

func (t *Taxonomy) LookupByCode(ctx context.Context, code string) (*core.TaxonomyEntry, error) {
	t.mu.Lock()
	t.lookups = append(t.lookups, code)
	t.mu.Unlock()

	if t.LookupFunc != nil {
		return t.LookupFunc(ctx, code)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		if strings.EqualFold(e.Code, code) {
			return e, nil
		}
	}
	return nil, nil
}

// Searches returns every Search invocation in order.
func (t *Taxonomy) Searches() []SearchCall {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]SearchCall(nil), t.searches...)
}

// Lookups returns every code passed to LookupByCode in order.
func (t *Taxonomy) Lookups() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.lookups...)
}
