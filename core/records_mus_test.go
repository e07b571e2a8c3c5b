package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyEntryMUS(t *testing.T) {
	entry := TaxonomyEntry{
		Code:             "DQA",
		Name:             "Oximeter",
		Definition:       "Measures blood oxygen saturation",
		DeviceClass:      "2",
		MedicalSpecialty: "AN",
		RegulationNumber: "870.2700",
		Attributes:       map[string]string{"review_panel": "AN", "gmp_exempt": "N"},
	}

	buf := make([]byte, TaxonomyEntryMUS.Size(entry))
	n := TaxonomyEntryMUS.Marshal(entry, buf)
	assert.Equal(t, len(buf), n)

	got, m, err := TaxonomyEntryMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, entry, got)

	skipped, err := TaxonomyEntryMUS.Skip(buf)
	require.NoError(t, err)
	assert.Equal(t, n, skipped)

	t.Run("no attributes", func(t *testing.T) {
		bare := TaxonomyEntry{Code: "FRN", Name: "Pump, Infusion"}
		bs := make([]byte, TaxonomyEntryMUS.Size(bare))
		TaxonomyEntryMUS.Marshal(bare, bs)

		got, _, err := TaxonomyEntryMUS.Unmarshal(bs)
		require.NoError(t, err)
		assert.Equal(t, bare.Code, got.Code)
		assert.Empty(t, got.Attributes)
	})

	t.Run("truncated input", func(t *testing.T) {
		_, _, err := TaxonomyEntryMUS.Unmarshal(buf[:len(buf)/2])
		assert.Error(t, err)
	})
}

func TestCorpusRecordMUS(t *testing.T) {
	record := CorpusRecord{Reference: "K201234", Name: "Fingertip pulse oximeter", Code: "DQA", Applicant: "Acme"}

	buf := make([]byte, CorpusRecordMUS.Size(record))
	CorpusRecordMUS.Marshal(record, buf)

	got, _, err := CorpusRecordMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestIDMUS(t *testing.T) {
	id := IDFromContent("taxonomy:DQA")
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)

	got, _, err := IDMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}
