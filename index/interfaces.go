package index

import (
	"context"

	"github.com/poiesic/taxonomist/core"
)

type TaxonomyIndex interface {
	// Search finds taxonomy entries whose field contains every term.
	// Filters further restrict the results by exact field value.
	// Returns an empty page when nothing matches.
	Search(ctx context.Context, field string, terms []string, filters core.Filters) (*core.TaxonomyPage, error)

	// LookupByCode retrieves the entry with the given code.
	// Returns nil, nil when no entry has that code.
	LookupByCode(ctx context.Context, code string) (*core.TaxonomyEntry, error)
}

type CorpusIndex interface {
	// Search finds corpus records whose field contains every term.
	// Returns an empty page when nothing matches.
	Search(ctx context.Context, field string, terms []string) (*core.CorpusPage, error)
}
