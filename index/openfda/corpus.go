package openfda

import (
	"context"
	"errors"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/index"
)

// ClearanceRecord is one result of the 510(k) endpoint.
type ClearanceRecord struct {
	KNumber     string `json:"k_number"`
	DeviceName  string `json:"device_name"`
	ProductCode string `json:"product_code"`
	Applicant   string `json:"applicant"`
}

// Record converts the clearance into a corpus record.
func (r ClearanceRecord) Record() *core.CorpusRecord {
	return &core.CorpusRecord{
		Reference: r.KNumber,
		Name:      r.DeviceName,
		Code:      r.ProductCode,
		Applicant: r.Applicant,
	}
}

// Corpus implements index.CorpusIndex over the 510(k) clearance endpoint.
type Corpus struct {
	client *Client
}

var _ index.CorpusIndex = (*Corpus)(nil)

// Search returns the clearances whose field matches every term.
func (c *Corpus) Search(ctx context.Context, field string, terms []string) (*core.CorpusPage, error) {
	if len(terms) == 0 {
		return nil, index.BadQuery("no search terms")
	}

	resp, err := query[ClearanceRecord](ctx, c.client, clearancePath, buildSearch(field, terms, nil), c.client.limit)
	if errors.Is(err, errNoMatches) {
		return &core.CorpusPage{}, nil
	}
	if err != nil {
		return nil, err
	}

	page := &core.CorpusPage{
		Records: make([]*core.CorpusRecord, 0, len(resp.Results)),
		Total:   resp.Meta.Results.Total,
	}
	for _, rec := range resp.Results {
		page.Records = append(page.Records, rec.Record())
	}
	return page, nil
}
