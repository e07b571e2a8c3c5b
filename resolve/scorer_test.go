package resolve

import (
	"testing"

	"github.com/poiesic/taxonomist/core"
	"github.com/stretchr/testify/assert"
)

func TestScorer(t *testing.T) {
	scorer := NewScorer(NewSynonymTable(map[string][]string{"sugar": {"blood glucose"}}))

	meter := &core.TaxonomyEntry{Name: "System, Test, Blood Glucose, Over The Counter", Definition: "Measures glucose"}
	catheter := &core.TaxonomyEntry{Name: "Catheter, Intravascular", Definition: "A thin tube"}

	t.Run("empty results", func(t *testing.T) {
		assert.Equal(t, 0.0, scorer.Score(nil, []string{"sugar"}))
	})

	t.Run("empty terms", func(t *testing.T) {
		assert.Equal(t, 0.0, scorer.Score([]*core.TaxonomyEntry{meter}, nil))
	})

	t.Run("full coverage through synonyms", func(t *testing.T) {
		assert.Equal(t, 1.0, scorer.Score([]*core.TaxonomyEntry{meter}, []string{"sugar", "test"}))
	})

	t.Run("case insensitive substring", func(t *testing.T) {
		assert.Equal(t, 1.0, scorer.Score([]*core.TaxonomyEntry{catheter}, []string{"CATHETER", "vascular"}))
	})

	t.Run("mean over entries", func(t *testing.T) {
		score := scorer.Score([]*core.TaxonomyEntry{meter, catheter}, []string{"glucose", "tube"})
		// meter covers glucose only, catheter covers tube only
		assert.InDelta(t, 0.5, score, 1e-9)
	})

	t.Run("no coverage", func(t *testing.T) {
		assert.Equal(t, 0.0, scorer.Score([]*core.TaxonomyEntry{catheter}, []string{"pacemaker"}))
	})

	t.Run("nil synonym table", func(t *testing.T) {
		plain := NewScorer(nil)
		assert.Equal(t, 0.0, plain.Score([]*core.TaxonomyEntry{meter}, []string{"sugar"}))
	})
}

func TestScoreTexts(t *testing.T) {
	scorer := NewScorer(nil)
	assert.InDelta(t, 2.0/3.0, scorer.ScoreTexts([]string{"knee joint prosthesis"}, []string{"knee", "prosthesis", "hip"}), 1e-9)
}
