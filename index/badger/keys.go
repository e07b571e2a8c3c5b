package badger

import (
	"encoding/binary"

	"github.com/poiesic/taxonomist/core"
)

// Key prefixes for different data types
const (
	taxonomyRecordPrefix  = "taxrec"
	taxonomyCodePrefix    = "taxcode"
	taxonomyPostingPrefix = "taxtok"
	corpusRecordPrefix    = "correc"
	corpusPostingPrefix   = "cortok"
	checkpointPrefix      = "chkpt"
)

// makeRecordKey generates a key for a record by ID.
// Format: prefix:id
func makeRecordKey(prefix string, id core.ID) []byte {
	buf := make([]byte, len(prefix)+1+8)
	offset := copy(buf, prefix+":")
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeCodeKey generates a key for the taxonomy code index.
// Format: prefix:foldedcode
func makeCodeKey(code string) []byte {
	return []byte(taxonomyCodePrefix + ":" + core.Fold(code))
}

// makePostingKey generates a composite key for a field word posting.
// Format: prefix:field:word:id
func makePostingKey(prefix, field, word string, id core.ID) []byte {
	head := makePartialPostingKey(prefix, field, word)
	buf := make([]byte, len(head)+1+8)
	offset := copy(buf, head)
	buf[offset] = ':'
	binary.BigEndian.PutUint64(buf[offset+1:], uint64(id))
	return buf
}

// makePartialPostingKey generates a partial key matching every word of a
// field that starts with wordPrefix.
// Format: prefix:field:wordPrefix
func makePartialPostingKey(prefix, field, wordPrefix string) []byte {
	return []byte(prefix + ":" + field + ":" + wordPrefix)
}

// postingID extracts the record ID from the tail of a posting key.
func postingID(key []byte) (core.ID, bool) {
	if len(key) < 9 || key[len(key)-9] != ':' {
		return 0, false
	}
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:])), true
}

// makeCheckpointKey generates a key for ingestion checkpoints.
func makeCheckpointKey(source string) []byte {
	return []byte(checkpointPrefix + ":" + source)
}
