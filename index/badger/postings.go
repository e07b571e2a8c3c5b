package badger

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/taxonomist/core"
)

// setPostings writes one posting per distinct word of text.
func setPostings(tx *badger.Txn, prefix, field, text string, id core.ID) error {
	seen := make(map[string]bool)
	for _, word := range core.Words(text) {
		if seen[word] {
			continue
		}
		seen[word] = true
		if err := tx.Set(makePostingKey(prefix, field, word, id), nil); err != nil {
			return err
		}
	}
	return nil
}

// deletePostings removes the postings written by setPostings for text.
func deletePostings(tx *badger.Txn, prefix, field, text string, id core.ID) error {
	for _, word := range core.Words(text) {
		if err := tx.Delete(makePostingKey(prefix, field, word, id)); err != nil {
			return err
		}
	}
	return nil
}

// scanPostings returns the IDs of records whose field has a word starting
// with wordPrefix.
func scanPostings(tx *badger.Txn, prefix, field, wordPrefix string) map[core.ID]struct{} {
	ids := make(map[core.ID]struct{})
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = makePartialPostingKey(prefix, field, wordPrefix)
	it := tx.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		if id, ok := postingID(it.Item().Key()); ok {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// matchPostings returns the IDs of records where every word of every term
// prefixes some word of the field. No terms match nothing.
func matchPostings(tx *badger.Txn, prefix, field string, terms []string) map[core.ID]struct{} {
	var result map[core.ID]struct{}
	for _, term := range terms {
		words := core.Words(term)
		if len(words) == 0 {
			return nil
		}
		for _, word := range words {
			ids := scanPostings(tx, prefix, field, word)
			if result == nil {
				result = ids
			} else {
				for id := range result {
					if _, ok := ids[id]; !ok {
						delete(result, id)
					}
				}
			}
			if len(result) == 0 {
				return nil
			}
		}
	}
	return result
}
