package openfda

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/index"
)

// ClassificationRecord is one result of the classification endpoint, as
// returned by searches and found in bulk downloads.
type ClassificationRecord map[string]any

func (r ClassificationRecord) str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Entry converts the record. Fields the model does not name are kept as
// attributes when they hold text.
func (r ClassificationRecord) Entry() *core.TaxonomyEntry {
	entry := &core.TaxonomyEntry{
		Code:             r.str(core.FieldCode),
		Name:             r.str(core.FieldName),
		Definition:       r.str(core.FieldDefinition),
		DeviceClass:      r.str(core.FieldDeviceClass),
		MedicalSpecialty: r.str(core.FieldMedicalSpecialty),
		RegulationNumber: r.str(core.FieldRegulationNumber),
	}
	for key, value := range r {
		switch key {
		case core.FieldCode, core.FieldName, core.FieldDefinition, core.FieldDeviceClass,
			core.FieldMedicalSpecialty, core.FieldRegulationNumber:
			continue
		}
		// Nested objects such as openfda cross references are not kept
		s, ok := value.(string)
		if !ok || s == "" {
			continue
		}
		if entry.Attributes == nil {
			entry.Attributes = make(map[string]string)
		}
		entry.Attributes[key] = s
	}
	return entry
}

// Taxonomy implements index.TaxonomyIndex over the classification endpoint.
type Taxonomy struct {
	client *Client
}

var _ index.TaxonomyIndex = (*Taxonomy)(nil)

// Search returns the classifications whose field matches every term.
func (t *Taxonomy) Search(ctx context.Context, field string, terms []string, filters core.Filters) (*core.TaxonomyPage, error) {
	if len(terms) == 0 {
		return nil, index.BadQuery("no search terms")
	}

	resp, err := query[ClassificationRecord](ctx, t.client, classificationPath, buildSearch(field, terms, filters), t.client.limit)
	if errors.Is(err, errNoMatches) {
		return &core.TaxonomyPage{}, nil
	}
	if err != nil {
		return nil, err
	}

	page := &core.TaxonomyPage{
		Entries: make([]*core.TaxonomyEntry, 0, len(resp.Results)),
		Total:   resp.Meta.Results.Total,
	}
	for _, rec := range resp.Results {
		page.Entries = append(page.Entries, rec.Entry())
	}
	return page, nil
}

// LookupByCode returns the classification with the given product code.
// Returns nil, nil if none exists.
func (t *Taxonomy) LookupByCode(ctx context.Context, code string) (*core.TaxonomyEntry, error) {
	q := quote(strings.ToUpper(code))
	if q == "" {
		return nil, nil
	}

	resp, err := query[ClassificationRecord](ctx, t.client, classificationPath, core.FieldCode+":"+q, 1)
	if errors.Is(err, errNoMatches) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return resp.Results[0].Entry(), nil
}
