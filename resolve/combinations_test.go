package resolve

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comboTerms(combos []Combination) [][]string {
	out := make([][]string, len(combos))
	for i, c := range combos {
		out[i] = c.Terms
	}
	return out
}

func TestGenerateCombinations(t *testing.T) {
	t.Run("three terms", func(t *testing.T) {
		combos := GenerateCombinations([]string{"A", "B", "C"})
		assert.Equal(t, [][]string{
			{"A", "B", "C"},
			{"A", "B"}, {"B", "C"}, {"A", "C"},
			{"A"}, {"B"}, {"C"},
		}, comboTerms(combos))
	})

	t.Run("single term yields itself", func(t *testing.T) {
		combos := GenerateCombinations([]string{"catheter"})
		require.Len(t, combos, 1)
		assert.Equal(t, []string{"catheter"}, combos[0].Terms)
		assert.Equal(t, []int{0}, combos[0].Indices)
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		assert.Empty(t, GenerateCombinations(nil))
		assert.Empty(t, GenerateCombinations([]string{}))
	})

	t.Run("four terms keeps contiguous runs first", func(t *testing.T) {
		combos := GenerateCombinations([]string{"A", "B", "C", "D"})
		var sizeThree []string
		for _, c := range combos {
			if c.Size() == 3 {
				sizeThree = append(sizeThree, strings.Join(c.Terms, ""))
			}
		}
		assert.Equal(t, []string{"ABC", "BCD", "ABD", "ACD"}, sizeThree)
	})

	for n := 1; n <= 7; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			terms := make([]string, n)
			for i := range terms {
				terms[i] = fmt.Sprintf("t%d", i)
			}
			combos := GenerateCombinations(terms)
			assert.Len(t, combos, 1<<n-1)

			seen := make(map[string]bool)
			prevSize := n
			sawSparse := false
			for _, c := range combos {
				key := fmt.Sprint(c.Indices)
				assert.False(t, seen[key], "duplicate combination %s", key)
				seen[key] = true

				require.LessOrEqual(t, c.Size(), prevSize, "sizes must not increase")
				if c.Size() < prevSize {
					prevSize = c.Size()
					sawSparse = false
				}
				if !c.Contiguous() {
					sawSparse = true
				} else {
					assert.False(t, sawSparse, "contiguous %v after a non-contiguous combination", c.Indices)
				}

				for i := 1; i < len(c.Indices); i++ {
					assert.Less(t, c.Indices[i-1], c.Indices[i])
				}
			}
			assert.Equal(t, 1, prevSize)
		})
	}
}

func TestCombinationsStopsEarly(t *testing.T) {
	count := 0
	for range Combinations([]string{"A", "B", "C", "D", "E"}) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestCombinationsIsRestartable(t *testing.T) {
	seq := Combinations([]string{"A", "B", "C"})
	var first, second [][]string
	for c := range seq {
		first = append(first, c.Terms)
	}
	for c := range seq {
		second = append(second, c.Terms)
	}
	assert.Equal(t, first, second)
}

func TestFilterFillers(t *testing.T) {
	fillers := NewWordSet("for", "the", "a")

	t.Run("removes fillers when two terms remain", func(t *testing.T) {
		got := FilterFillers([]string{"monitor", "for", "the", "heart"}, fillers)
		assert.Equal(t, []string{"monitor", "heart"}, got)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got := FilterFillers([]string{"The", "glucose", "meter"}, fillers)
		assert.Equal(t, []string{"glucose", "meter"}, got)
	})

	t.Run("keeps input when fewer than two would remain", func(t *testing.T) {
		terms := []string{"a", "catheter"}
		assert.Equal(t, terms, FilterFillers(terms, fillers))
	})

	t.Run("empty filler set", func(t *testing.T) {
		terms := []string{"a", "b", "c"}
		assert.Equal(t, terms, FilterFillers(terms, WordSet{}))
	})
}
