package badger

import (
	"context"
	"testing"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTaxonomy(t *testing.T) (*TaxonomyIndex, *CorpusIndex, *Backend) {
	t.Helper()
	taxonomy, corpus, backend, err := NewMemoryIndexes()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	err = taxonomy.Put(context.Background(),
		&core.TaxonomyEntry{
			Code:             "DQA",
			Name:             "Catheter, Intravascular, Diagnostic",
			Definition:       "A thin tube placed in a blood vessel",
			DeviceClass:      "2",
			MedicalSpecialty: "CV",
		},
		&core.TaxonomyEntry{
			Code:             "NBW",
			Name:             "System, Test, Blood Glucose, Over The Counter",
			Definition:       "Measures glucose in capillary blood",
			DeviceClass:      "2",
			MedicalSpecialty: "CH",
			Attributes:       map[string]string{"submission_type_id": "1"},
		},
		&core.TaxonomyEntry{
			Code:        "LWS",
			Name:        "Implantable Cardioverter Defibrillator",
			DeviceClass: "3",
		},
	)
	require.NoError(t, err)
	return taxonomy, corpus, backend
}

func codes(entries []*core.TaxonomyEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Code
	}
	return out
}

func TestTaxonomyIndex_Search(t *testing.T) {
	taxonomy, _, _ := seedTaxonomy(t)
	ctx := context.Background()

	t.Run("all terms must match", func(t *testing.T) {
		page, err := taxonomy.Search(ctx, core.FieldName, []string{"blood", "glucose"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"NBW"}, codes(page.Entries))
		assert.Equal(t, 1, page.Total)
	})

	t.Run("word prefixes match", func(t *testing.T) {
		page, err := taxonomy.Search(ctx, core.FieldName, []string{"CATH"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"DQA"}, codes(page.Entries))
	})

	t.Run("restricted to the field", func(t *testing.T) {
		page, err := taxonomy.Search(ctx, core.FieldName, []string{"capillary"}, nil)
		require.NoError(t, err)
		assert.Empty(t, page.Entries)

		page, err = taxonomy.Search(ctx, core.FieldDefinition, []string{"capillary"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"NBW"}, codes(page.Entries))
	})

	t.Run("filters", func(t *testing.T) {
		page, err := taxonomy.Search(ctx, core.FieldDeviceClass, []string{"2"}, core.Filters{{Field: core.FieldMedicalSpecialty, Value: "cv"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"DQA"}, codes(page.Entries))
	})

	t.Run("hyphenated term splits into words", func(t *testing.T) {
		page, err := taxonomy.Search(ctx, core.FieldName, []string{"over-the-counter"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"NBW"}, codes(page.Entries))
	})

	t.Run("no terms", func(t *testing.T) {
		page, err := taxonomy.Search(ctx, core.FieldName, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, page.Entries)
	})

	t.Run("unindexed field", func(t *testing.T) {
		_, err := taxonomy.Search(ctx, "submission_type_id", []string{"1"}, nil)
		assert.ErrorIs(t, err, index.ErrBadQuery)
	})
}

func TestTaxonomyIndex_PageSize(t *testing.T) {
	_, _, backend := seedTaxonomy(t)
	small := NewTaxonomyIndex(backend, 1)

	page, err := small.Search(context.Background(), core.FieldDeviceClass, []string{"2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"DQA"}, codes(page.Entries))
	assert.Equal(t, 2, page.Total)
}

func TestTaxonomyIndex_LookupByCode(t *testing.T) {
	taxonomy, _, _ := seedTaxonomy(t)
	ctx := context.Background()

	entry, err := taxonomy.LookupByCode(ctx, "nbw")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "System, Test, Blood Glucose, Over The Counter", entry.Name)
	assert.Equal(t, map[string]string{"submission_type_id": "1"}, entry.Attributes)

	entry, err = taxonomy.LookupByCode(ctx, "ZZZ")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestTaxonomyIndex_Put(t *testing.T) {
	taxonomy, _, _ := seedTaxonomy(t)
	ctx := context.Background()

	t.Run("replaces entry and its postings", func(t *testing.T) {
		err := taxonomy.Put(ctx, &core.TaxonomyEntry{Code: "DQA", Name: "Catheter, Angiography"})
		require.NoError(t, err)

		page, err := taxonomy.Search(ctx, core.FieldName, []string{"diagnostic"}, nil)
		require.NoError(t, err)
		assert.Empty(t, page.Entries)

		page, err = taxonomy.Search(ctx, core.FieldName, []string{"angiography"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"DQA"}, codes(page.Entries))

		count, err := taxonomy.Count()
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("invalid entry", func(t *testing.T) {
		err := taxonomy.Put(ctx, &core.TaxonomyEntry{Name: "No code"})
		assert.ErrorIs(t, err, core.ErrInvalidTaxonomyEntry)
	})
}

func TestCorpusIndex(t *testing.T) {
	_, corpus, _ := seedTaxonomy(t)
	ctx := context.Background()

	err := corpus.Put(ctx,
		&core.CorpusRecord{Reference: "K200002", Name: "GlucoCheck Plus", Code: "NBW", Applicant: "Acme Medical"},
		&core.CorpusRecord{Reference: "K200001", Name: "Acme GlucoCheck Meter", Code: "NBW", Applicant: "Acme Medical"},
		&core.CorpusRecord{Reference: "K200003", Name: "FlowLine Catheter", Code: "DQA", Applicant: "Vessel Inc"},
	)
	require.NoError(t, err)

	t.Run("search by name", func(t *testing.T) {
		page, err := corpus.Search(ctx, core.FieldName, []string{"glucocheck"})
		require.NoError(t, err)
		require.Len(t, page.Records, 2)
		assert.Equal(t, "K200001", page.Records[0].Reference)
		assert.Equal(t, "K200002", page.Records[1].Reference)
	})

	t.Run("search by applicant", func(t *testing.T) {
		page, err := corpus.Search(ctx, core.FieldApplicant, []string{"vessel"})
		require.NoError(t, err)
		require.Len(t, page.Records, 1)
		assert.Equal(t, "DQA", page.Records[0].Code)
	})

	t.Run("duplicate put is idempotent", func(t *testing.T) {
		err := corpus.Put(ctx, &core.CorpusRecord{Reference: "K200003", Name: "FlowLine Catheter", Code: "DQA", Applicant: "Vessel Inc"})
		require.NoError(t, err)
		count, err := corpus.Count()
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("record without code", func(t *testing.T) {
		err := corpus.Put(ctx, &core.CorpusRecord{Name: "Orphan"})
		assert.ErrorIs(t, err, core.ErrInvalidCorpusRecord)
	})

	t.Run("unindexed field", func(t *testing.T) {
		_, err := corpus.Search(ctx, core.FieldCode, []string{"DQA"})
		assert.ErrorIs(t, err, index.ErrBadQuery)
	})
}

func TestCheckpointStore(t *testing.T) {
	_, _, backend := seedTaxonomy(t)
	store := NewCheckpointStore(backend)
	ctx := context.Background()

	cp, err := store.LoadCheckpoint(ctx, "taxonomy")
	require.NoError(t, err)
	assert.Nil(t, cp)

	require.NoError(t, store.SaveCheckpoint(ctx, &Checkpoint{Source: "taxonomy", Offset: 1500}))

	cp, err = store.LoadCheckpoint(ctx, "taxonomy")
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Equal(t, "taxonomy", cp.Source)
	assert.EqualValues(t, 1500, cp.Offset)
	assert.False(t, cp.UpdatedAt.IsZero())

	require.NoError(t, store.DeleteCheckpoint(ctx, "taxonomy"))
	cp, err = store.LoadCheckpoint(ctx, "taxonomy")
	require.NoError(t, err)
	assert.Nil(t, cp)
}
