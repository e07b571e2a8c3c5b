package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored records.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Well-known field names of the taxonomy and corpus collections.
const (
	FieldName             = "device_name"
	FieldDefinition       = "definition"
	FieldCode             = "product_code"
	FieldDeviceClass      = "device_class"
	FieldMedicalSpecialty = "medical_specialty"
	FieldRegulationNumber = "regulation_number"
	FieldReference        = "k_number"
	FieldApplicant        = "applicant"
)

// TaxonomyEntry is one classification entry of the taxonomy. It is the
// candidate record returned by primary searches and Direct lookups.
type TaxonomyEntry struct {
	Code             string
	Name             string
	Definition       string
	DeviceClass      string
	MedicalSpecialty string
	RegulationNumber string
	Attributes       map[string]string // Any other text fields returned by the service
}

// ID returns the content ID of the entry, derived from its code.
func (e *TaxonomyEntry) ID() ID {
	return IDFromContent("taxonomy:" + e.Code)
}

// FieldValue returns the text stored under a named field.
func (e *TaxonomyEntry) FieldValue(field string) string {
	switch field {
	case FieldCode:
		return e.Code
	case FieldName:
		return e.Name
	case FieldDefinition:
		return e.Definition
	case FieldDeviceClass:
		return e.DeviceClass
	case FieldMedicalSpecialty:
		return e.MedicalSpecialty
	case FieldRegulationNumber:
		return e.RegulationNumber
	}
	return e.Attributes[field]
}

// SearchableText returns the concatenated text used for coverage scoring.
func (e *TaxonomyEntry) SearchableText() string {
	return e.Name + " " + e.Definition
}

// CorpusRecord is a record of the secondary corpus. It carries a free-text
// name and the taxonomy code it was filed under.
type CorpusRecord struct {
	Reference string
	Name      string
	Code      string
	Applicant string
}

// ID returns the content ID of the record.
func (r *CorpusRecord) ID() ID {
	return IDFromContent("corpus:" + r.Reference + ":" + r.Code + ":" + r.Name)
}

// FieldValue returns the text stored under a named field.
func (r *CorpusRecord) FieldValue(field string) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldCode:
		return r.Code
	case FieldReference:
		return r.Reference
	case FieldApplicant:
		return r.Applicant
	}
	return ""
}

// TaxonomyPage is one page of primary search results.
type TaxonomyPage struct {
	Entries []*TaxonomyEntry
	Total   int
}

// CorpusPage is one page of secondary corpus results.
type CorpusPage struct {
	Records []*CorpusRecord
	Total   int
}

// Filter restricts a primary search to entries whose field equals a value.
type Filter struct {
	Field string
	Value string
}

// Filters is an ordered list of restrictions ANDed onto every primary query.
type Filters []Filter

// Matches reports whether an entry satisfies every filter (case-insensitive).
func (f Filters) Matches(e *TaxonomyEntry) bool {
	for _, filter := range f {
		if !strings.EqualFold(strings.TrimSpace(e.FieldValue(filter.Field)), strings.TrimSpace(filter.Value)) {
			return false
		}
	}
	return true
}

// Collection names the collection an external call was issued against.
type Collection string

const (
	CollectionTaxonomy Collection = "taxonomy"
	CollectionCorpus   Collection = "corpus"
)

// CallStatus is the typed outcome of one external call.
type CallStatus int

const (
	// CallSuccess means the call returned at least one record.
	CallSuccess CallStatus = iota + 1
	// CallEmpty means the call completed with no records.
	CallEmpty
	// CallFailed means the call returned an error.
	CallFailed
)

func (s CallStatus) String() string {
	switch s {
	case CallSuccess:
		return "success"
	case CallEmpty:
		return "empty"
	case CallFailed:
		return "failed"
	}
	return "unknown"
}

// Call records one external search invocation, in the order it was issued.
type Call struct {
	Collection Collection
	Field      string   // Empty for Direct lookups
	Terms      []string // For Direct lookups, the code
	Filters    Filters
	Status     CallStatus
	Count      int    // Records returned
	Total      int    // Total matches reported by the service
	Err        string // Error text when Status is CallFailed
}

// OutcomeKind tags a resolution outcome.
type OutcomeKind int

const (
	// OutcomeDirect is an exact taxonomy code lookup.
	OutcomeDirect OutcomeKind = iota + 1
	// OutcomeStrong is a full-term or high-coverage match.
	OutcomeStrong
	// OutcomeWeak is the best partial-coverage match found.
	OutcomeWeak
	// OutcomeBridged means codes were discovered through the secondary corpus.
	OutcomeBridged
	// OutcomeUnresolved means nothing matched; a suggestion is attached.
	OutcomeUnresolved
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeDirect:
		return "direct"
	case OutcomeStrong:
		return "strong"
	case OutcomeWeak:
		return "weak"
	case OutcomeBridged:
		return "bridged"
	case OutcomeUnresolved:
		return "unresolved"
	}
	return "unknown"
}

// BridgedEntry is a taxonomy entry discovered through corpus records that reference its code.
type BridgedEntry struct {
	Entry       *TaxonomyEntry
	Occurrences int      // Corpus records in the hit carrying this code
	Examples    []string // Example corpus names that led to the code
}

// Suggestion is the static guidance attached to an unresolved outcome.
type Suggestion struct {
	Template string   // Template identifier
	Message  string
	Tips     []string
}

// Outcome is the result of one resolution. It is built once and not modified afterwards.
type Outcome struct {
	ID            string
	Kind          OutcomeKind
	Query         []string // Normalized original terms
	Expanded      []string // Synonym-expanded terms
	Entries       []*TaxonomyEntry
	Total         int
	Score         float64  // Coverage of the returned entries (Strong, Weak)
	Combination   []string // Terms of the query that produced Entries
	Field         string   // Field the winning query was restricted to
	Bridged       []BridgedEntry
	BridgeQuery   []string        // Corpus query that produced Bridged
	CorpusSamples []*CorpusRecord // Raw corpus matches behind Bridged
	Suggestion    *Suggestion
	Calls         []Call
}

// Resolved reports whether the outcome carries taxonomy entries.
func (o *Outcome) Resolved() bool {
	return o.Kind != OutcomeUnresolved
}
