package memory

import (
	"context"
	"sync"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/index"
)

// Corpus is an in-memory index.CorpusIndex.
type Corpus struct {
	// SearchFunc is called by Search if set.
	SearchFunc func(ctx context.Context, field string, terms []string) (*core.CorpusPage, error)

	mu       sync.Mutex
	records  []*core.CorpusRecord
	searches []SearchCall
}

var _ index.CorpusIndex = (*Corpus)(nil)

// NewCorpus creates an index holding the given records.
func NewCorpus(records ...*core.CorpusRecord) *Corpus {
	return &Corpus{records: records}
}

// Add appends records to the index.
func (c *Corpus) Add(records ...*core.CorpusRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, records...)
}

func (c *Corpus) Search(ctx context.Context, field string, terms []string) (*core.CorpusPage, error) {
	c.mu.Lock()
	c.searches = append(c.searches, SearchCall{Field: field, Terms: append([]string(nil), terms...)})
	c.mu.Unlock()

	if c.SearchFunc != nil {
		return c.SearchFunc(ctx, field, terms)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	page := &core.CorpusPage{}
	for _, r := range c.records {
		if matchesAll(r.FieldValue(field), terms) {
			page.Records = append(page.Records, r)
		}
	}
	page.Total = len(page.Records)
	return page, nil
}

// Searches returns every Search invocation in order.
func (c *Corpus) Searches() []SearchCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]SearchCall(nil), c.searches...)
}
