package core

import (
	"fmt"
	"strings"
)

func ValidateTaxonomyEntry(entry *TaxonomyEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidTaxonomyEntry)
	}

	if strings.TrimSpace(entry.Code) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTaxonomyEntry, ErrEmptyCode)
	}

	if strings.TrimSpace(entry.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTaxonomyEntry, ErrEmptyName)
	}

	return nil
}

func ValidateCorpusRecord(record *CorpusRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidCorpusRecord)
	}

	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCorpusRecord, ErrEmptyName)
	}

	// Records without a code cannot bridge to the taxonomy.
	if strings.TrimSpace(record.Code) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCorpusRecord, ErrEmptyCode)
	}

	return nil
}
