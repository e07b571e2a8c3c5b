package badger

import (
	"context"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/index"
)

// CorpusFields are the corpus fields the mirror can search.
var CorpusFields = []string{core.FieldName, core.FieldApplicant}

// CorpusIndex implements index.CorpusIndex over the mirror.
type CorpusIndex struct {
	backend  *Backend
	pageSize int
}

var _ index.CorpusIndex = (*CorpusIndex)(nil)

// NewCorpusIndex creates a corpus index. A pageSize below one uses DefaultPageSize.
func NewCorpusIndex(backend *Backend, pageSize int) *CorpusIndex {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &CorpusIndex{backend: backend, pageSize: pageSize}
}

// Put stores records. Records are keyed by content, so storing the same record twice is a no-op.
func (x *CorpusIndex) Put(ctx context.Context, records ...*core.CorpusRecord) error {
	return x.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := core.ValidateCorpusRecord(record); err != nil {
				return err
			}

			id := record.ID()
			bs := make([]byte, core.CorpusRecordMUS.Size(*record))
			core.CorpusRecordMUS.Marshal(*record, bs)
			if err := tx.Set(makeRecordKey(corpusRecordPrefix, id), bs); err != nil {
				return err
			}

			for _, field := range CorpusFields {
				if err := setPostings(tx, corpusPostingPrefix, field, record.FieldValue(field), id); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
}

// Search returns the records whose field contains every term as a word prefix.
func (x *CorpusIndex) Search(ctx context.Context, field string, terms []string) (*core.CorpusPage, error) {
	if !slices.Contains(CorpusFields, field) {
		return nil, index.BadQuery("field not indexed: " + field)
	}

	page := &core.CorpusPage{}
	err := x.backend.WithTx(func(tx *badger.Txn) error {
		for id := range matchPostings(tx, corpusPostingPrefix, field, terms) {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, err := readCorpusRecord(tx, makeRecordKey(corpusRecordPrefix, id))
			if err != nil {
				return err
			}
			if record != nil {
				page.Records = append(page.Records, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(page.Records, func(a, b *core.CorpusRecord) int {
		if c := strings.Compare(a.Reference, b.Reference); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	page.Total = len(page.Records)
	if len(page.Records) > x.pageSize {
		page.Records = page.Records[:x.pageSize]
	}
	return page, nil
}

// Count returns the number of stored records.
func (x *CorpusIndex) Count() (int, error) {
	return x.backend.countPrefix([]byte(corpusRecordPrefix + ":"))
}

// readCorpusRecord reads a record within a transaction.
// Returns nil, nil if not found.
func readCorpusRecord(tx *badger.Txn, key []byte) (*core.CorpusRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record core.CorpusRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, _, unmarshalErr = core.CorpusRecordMUS.Unmarshal(val)
		return unmarshalErr
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}
