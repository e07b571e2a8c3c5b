package resolve

import (
	"slices"

	"github.com/poiesic/taxonomist/core"
)

const (
	stageDirect = "direct"
	stageSearch = "search"
	stageBridge = "bridge"
)

// searchTaxonomy issues one primary search and records it. It returns nil
// unless the search succeeded with at least one entry.
func (r *Resolver) searchTaxonomy(rn *run, field string, terms []string) *core.TaxonomyPage {
	call := core.Call{
		Collection: core.CollectionTaxonomy,
		Field:      field,
		Terms:      slices.Clone(terms),
		Filters:    rn.filters,
	}

	page, err := r.taxonomy.Search(rn.ctx, field, terms, rn.filters)
	switch {
	case err != nil:
		call.Status = core.CallFailed
		call.Err = err.Error()
		r.logger.Warn("taxonomy search failed", "field", field, "terms", terms, "err", err)
		page = nil
	case page == nil || len(page.Entries) == 0:
		call.Status = core.CallEmpty
		page = nil
	default:
		call.Status = core.CallSuccess
		call.Count = len(page.Entries)
		call.Total = page.Total
	}

	r.record(rn, call)
	return page
}

// lookup issues one Direct lookup and records it. It returns nil when the
// code is unknown or the lookup failed.
func (r *Resolver) lookup(rn *run, code string) *core.TaxonomyEntry {
	call := core.Call{
		Collection: core.CollectionTaxonomy,
		Terms:      []string{code},
	}

	entry, err := r.taxonomy.LookupByCode(rn.ctx, code)
	switch {
	case err != nil:
		call.Status = core.CallFailed
		call.Err = err.Error()
		r.logger.Warn("taxonomy lookup failed", "code", code, "err", err)
		entry = nil
	case entry == nil:
		call.Status = core.CallEmpty
	default:
		call.Status = core.CallSuccess
		call.Count = 1
		call.Total = 1
	}

	r.record(rn, call)
	return entry
}

// searchCorpus issues one corpus search and records it. It returns nil
// unless the search succeeded with at least one record.
func (r *Resolver) searchCorpus(rn *run, terms []string) *core.CorpusPage {
	call := core.Call{
		Collection: core.CollectionCorpus,
		Field:      r.corpusField,
		Terms:      slices.Clone(terms),
	}

	page, err := r.corpus.Search(rn.ctx, r.corpusField, terms)
	switch {
	case err != nil:
		call.Status = core.CallFailed
		call.Err = err.Error()
		r.logger.Warn("corpus search failed", "field", r.corpusField, "terms", terms, "err", err)
		page = nil
	case page == nil || len(page.Records) == 0:
		call.Status = core.CallEmpty
		page = nil
	default:
		call.Status = core.CallSuccess
		call.Count = len(page.Records)
		call.Total = page.Total
	}

	r.record(rn, call)
	return page
}

func (r *Resolver) record(rn *run, call core.Call) {
	r.logger.Debug("search call",
		"collection", string(call.Collection),
		"field", call.Field,
		"terms", call.Terms,
		"status", call.Status.String(),
		"count", call.Count)
	rn.calls = append(rn.calls, call)
	rn.monitor.AfterCall(call)
}
