package badger

import (
	"context"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/index"
)

// TaxonomyFields are the taxonomy fields the mirror can search.
var TaxonomyFields = []string{
	core.FieldName,
	core.FieldDefinition,
	core.FieldDeviceClass,
	core.FieldMedicalSpecialty,
	core.FieldRegulationNumber,
}

// DefaultPageSize caps the records returned by one search.
const DefaultPageSize = 100

// TaxonomyIndex implements index.TaxonomyIndex over the mirror.
type TaxonomyIndex struct {
	backend  *Backend
	pageSize int
}

var _ index.TaxonomyIndex = (*TaxonomyIndex)(nil)

// NewTaxonomyIndex creates a taxonomy index. A pageSize below one uses DefaultPageSize.
func NewTaxonomyIndex(backend *Backend, pageSize int) *TaxonomyIndex {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &TaxonomyIndex{backend: backend, pageSize: pageSize}
}

// Put stores entries, replacing any entry with the same code.
func (x *TaxonomyIndex) Put(ctx context.Context, entries ...*core.TaxonomyEntry) error {
	return x.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := core.ValidateTaxonomyEntry(entry); err != nil {
				return err
			}

			id := entry.ID()
			key := makeRecordKey(taxonomyRecordPrefix, id)

			// Drop postings of the previous version
			old, err := readTaxonomyEntry(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				for _, field := range TaxonomyFields {
					if err := deletePostings(tx, taxonomyPostingPrefix, field, old.FieldValue(field), id); err != nil {
						return err
					}
				}
			}

			bs := make([]byte, core.TaxonomyEntryMUS.Size(*entry))
			core.TaxonomyEntryMUS.Marshal(*entry, bs)
			if err := tx.Set(key, bs); err != nil {
				return err
			}

			idBytes := make([]byte, core.IDMUS.Size(id))
			core.IDMUS.Marshal(id, idBytes)
			if err := tx.Set(makeCodeKey(entry.Code), idBytes); err != nil {
				return err
			}

			for _, field := range TaxonomyFields {
				if err := setPostings(tx, taxonomyPostingPrefix, field, entry.FieldValue(field), id); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
}

// Search returns the entries whose field contains every term as a word prefix.
func (x *TaxonomyIndex) Search(ctx context.Context, field string, terms []string, filters core.Filters) (*core.TaxonomyPage, error) {
	if !slices.Contains(TaxonomyFields, field) {
		return nil, index.BadQuery("field not indexed: " + field)
	}

	page := &core.TaxonomyPage{}
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		ids := matchPostings(tx, taxonomyPostingPrefix, field, terms)
		for id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := readTaxonomyEntry(tx, makeRecordKey(taxonomyRecordPrefix, id))
			if err != nil {
				return err
			}
			if entry != nil && filters.Matches(entry) {
				page.Entries = append(page.Entries, entry)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(page.Entries, func(a, b *core.TaxonomyEntry) int {
		return strings.Compare(a.Code, b.Code)
	})
	page.Total = len(page.Entries)
	if len(page.Entries) > x.pageSize {
		page.Entries = page.Entries[:x.pageSize]
	}
	return page, nil
}

// LookupByCode returns the entry with the given code.
// Returns nil, nil if no entry exists.
func (x *TaxonomyIndex) LookupByCode(ctx context.Context, code string) (*core.TaxonomyEntry, error) {
	var entry *core.TaxonomyEntry
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCodeKey(code))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		var id core.ID
		err = item.Value(func(val []byte) error {
			var unmarshalErr error
			id, _, unmarshalErr = core.IDMUS.Unmarshal(val)
			return unmarshalErr
		})
		if err != nil {
			return err
		}

		entry, err = readTaxonomyEntry(tx, makeRecordKey(taxonomyRecordPrefix, id))
		return err
	}, false)
	return entry, err
}

// Count returns the number of stored entries.
func (x *TaxonomyIndex) Count() (int, error) {
	return x.backend.countPrefix([]byte(taxonomyRecordPrefix + ":"))
}

// readTaxonomyEntry reads an entry within a transaction.
// Returns nil, nil if not found.
func readTaxonomyEntry(tx *badger.Txn, key []byte) (*core.TaxonomyEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry core.TaxonomyEntry
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		entry, _, unmarshalErr = core.TaxonomyEntryMUS.Unmarshal(val)
		return unmarshalErr
	})
	if err != nil {
		return nil, err
	}
	if len(entry.Attributes) == 0 {
		entry.Attributes = nil
	}
	return &entry, nil
}
