package resolve

import (
	"iter"
	"slices"
)

// Combination is a non-empty ordered subset of a term sequence, identified by
// the ascending indices it was drawn from.
type Combination struct {
	Indices []int
	Terms   []string
}

// Size returns the number of terms in the combination.
func (c Combination) Size() int {
	return len(c.Indices)
}

// Contiguous reports whether the indices form an unbroken ascending run.
func (c Combination) Contiguous() bool {
	return len(c.Indices) > 0 && c.Indices[len(c.Indices)-1]-c.Indices[0] == len(c.Indices)-1
}

// Combinations lazily yields every non-empty subset of terms. Sizes run from
// len(terms) down to 1; within a size, contiguous runs come first and then the
// remaining subsets, each group in ascending index order. A sequence of one
// term yields only itself and an empty sequence yields nothing.
func Combinations(terms []string) iter.Seq[Combination] {
	return func(yield func(Combination) bool) {
		n := len(terms)
		if n == 0 {
			return
		}
		if n == 1 {
			yield(Combination{Indices: []int{0}, Terms: slices.Clone(terms)})
			return
		}

		emit := func(indices []int) bool {
			picked := make([]string, len(indices))
			for i, idx := range indices {
				picked[i] = terms[idx]
			}
			return yield(Combination{Indices: slices.Clone(indices), Terms: picked})
		}

		for size := n; size >= 1; size-- {
			// Contiguous windows, by start index
			window := make([]int, size)
			for start := 0; start+size <= n; start++ {
				for i := range window {
					window[i] = start + i
				}
				if !emit(window) {
					return
				}
			}

			// Everything else, in lexicographic index order
			for indices := range indexSubsets(n, size) {
				if indices[size-1]-indices[0] == size-1 {
					continue
				}
				if !emit(indices) {
					return
				}
			}
		}
	}
}

// GenerateCombinations collects Combinations into a slice.
func GenerateCombinations(terms []string) []Combination {
	return slices.Collect(Combinations(terms))
}

// indexSubsets yields every ascending size-k subset of 0..n-1 in
// lexicographic order. The yielded slice is reused between iterations.
func indexSubsets(n, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k <= 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			if !yield(idx) {
				return
			}
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// FilterFillers removes filler words from terms, but only when at least two
// other terms remain. Otherwise terms are returned unchanged.
func FilterFillers(terms []string, fillers WordSet) []string {
	kept := make([]string, 0, len(terms))
	for _, t := range terms {
		if !fillers.Contains(t) {
			kept = append(kept, t)
		}
	}
	if len(kept) < 2 {
		return terms
	}
	return kept
}
