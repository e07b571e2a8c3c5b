package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanAttempts(t *testing.T) {
	t.Run("term set then combination then field", func(t *testing.T) {
		plan := Plan{
			TermSets: [][]string{{"A", "B"}, {"C"}},
			Fields:   []string{"name", "definition"},
		}

		type step struct {
			set   int
			terms []string
			field string
			full  bool
		}
		var got []step
		for a := range plan.Attempts() {
			got = append(got, step{a.TermSet, a.Combination.Terms, a.Field, a.FullLength()})
		}

		assert.Equal(t, []step{
			{0, []string{"A", "B"}, "name", true},
			{0, []string{"A", "B"}, "definition", true},
			{0, []string{"A"}, "name", false},
			{0, []string{"A"}, "definition", false},
			{0, []string{"B"}, "name", false},
			{0, []string{"B"}, "definition", false},
			{1, []string{"C"}, "name", true},
			{1, []string{"C"}, "definition", true},
		}, got)
	})

	t.Run("fillers removed per term set", func(t *testing.T) {
		plan := Plan{
			TermSets: [][]string{{"monitor", "for", "heart"}},
			Fields:   []string{"name"},
			Fillers:  NewWordSet("for"),
		}
		var first Attempt
		for a := range plan.Attempts() {
			first = a
			break
		}
		assert.Equal(t, []string{"monitor", "heart"}, first.Terms)
		assert.True(t, first.FullLength())
	})

	t.Run("count is fields times combinations", func(t *testing.T) {
		plan := Plan{
			TermSets: [][]string{{"a", "b", "c", "d"}},
			Fields:   []string{"x", "y", "z"},
		}
		count := 0
		for range plan.Attempts() {
			count++
		}
		assert.Equal(t, 15*3, count)
	})

	t.Run("no fields", func(t *testing.T) {
		plan := Plan{TermSets: [][]string{{"a"}}}
		count := 0
		for range plan.Attempts() {
			count++
		}
		assert.Zero(t, count)
	})
}
