package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	assert.Equal(t, IDFromContent("taxonomy:DQA"), IDFromContent("taxonomy:DQA"))
	assert.NotEqual(t, IDFromContent("taxonomy:DQA"), IDFromContent("taxonomy:DQB"))
}

func TestTaxonomyEntry_ID(t *testing.T) {
	a := &TaxonomyEntry{Code: "DQA", Name: "Oximeter"}
	b := &TaxonomyEntry{Code: "DQA", Name: "Oximeter, Pulse"}
	c := &CorpusRecord{Code: "DQA", Name: "Oximeter"}

	assert.Equal(t, a.ID(), b.ID(), "entry ID depends only on the code")
	assert.NotEqual(t, a.ID(), c.ID())
}

func TestTaxonomyEntry_FieldValue(t *testing.T) {
	entry := &TaxonomyEntry{
		Code:             "DQA",
		Name:             "Oximeter",
		Definition:       "Measures blood oxygen saturation",
		DeviceClass:      "2",
		MedicalSpecialty: "AN",
		RegulationNumber: "870.2700",
		Attributes:       map[string]string{"review_panel": "AN"},
	}

	assert.Equal(t, "DQA", entry.FieldValue(FieldCode))
	assert.Equal(t, "Oximeter", entry.FieldValue(FieldName))
	assert.Equal(t, "Measures blood oxygen saturation", entry.FieldValue(FieldDefinition))
	assert.Equal(t, "2", entry.FieldValue(FieldDeviceClass))
	assert.Equal(t, "AN", entry.FieldValue(FieldMedicalSpecialty))
	assert.Equal(t, "870.2700", entry.FieldValue(FieldRegulationNumber))
	assert.Equal(t, "AN", entry.FieldValue("review_panel"))
	assert.Empty(t, entry.FieldValue("missing"))
	assert.Equal(t, "Oximeter Measures blood oxygen saturation", entry.SearchableText())
}

func TestFilters_Matches(t *testing.T) {
	entry := &TaxonomyEntry{Code: "DQA", Name: "Oximeter", DeviceClass: "2", MedicalSpecialty: "AN"}

	t.Run("no filters", func(t *testing.T) {
		assert.True(t, Filters(nil).Matches(entry))
	})

	t.Run("all match case-insensitively", func(t *testing.T) {
		f := Filters{{Field: FieldDeviceClass, Value: "2"}, {Field: FieldMedicalSpecialty, Value: "an"}}
		assert.True(t, f.Matches(entry))
	})

	t.Run("one mismatch", func(t *testing.T) {
		f := Filters{{Field: FieldDeviceClass, Value: "2"}, {Field: FieldMedicalSpecialty, Value: "CV"}}
		assert.False(t, f.Matches(entry))
	})
}

func TestOutcomeKind_String(t *testing.T) {
	assert.Equal(t, "direct", OutcomeDirect.String())
	assert.Equal(t, "strong", OutcomeStrong.String())
	assert.Equal(t, "weak", OutcomeWeak.String())
	assert.Equal(t, "bridged", OutcomeBridged.String())
	assert.Equal(t, "unresolved", OutcomeUnresolved.String())
	assert.Equal(t, "unknown", OutcomeKind(0).String())
}

func TestOutcome_Resolved(t *testing.T) {
	assert.True(t, (&Outcome{Kind: OutcomeWeak}).Resolved())
	assert.False(t, (&Outcome{Kind: OutcomeUnresolved}).Resolved())
}
