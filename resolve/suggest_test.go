package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggester(t *testing.T) {
	s := NewSuggester(DefaultHighMissTerms())

	t.Run("software template", func(t *testing.T) {
		got := s.Suggest([]string{"AI", "reading", "scans"})
		assert.Equal(t, SuggestionSoftware, got.Template)
		assert.NotEmpty(t, got.Tips)
	})

	t.Run("general template", func(t *testing.T) {
		got := s.Suggest([]string{"thin", "tube"})
		assert.Equal(t, SuggestionGeneral, got.Template)
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Equal(t, SuggestionGeneral, s.Suggest(nil).Template)
	})

	t.Run("returned tips are copies", func(t *testing.T) {
		first := s.Suggest(nil)
		first.Tips[0] = "changed"
		assert.NotEqual(t, "changed", s.Suggest(nil).Tips[0])
	})
}
