package resolve

// Budget caps the number of external calls of one resolution stage.
// It is not safe for concurrent use; a resolution issues calls sequentially.
type Budget struct {
	limit     int
	remaining int
}

// NewBudget creates a budget allowing limit calls. Negative limits are treated as zero.
func NewBudget(limit int) *Budget {
	if limit < 0 {
		limit = 0
	}
	return &Budget{limit: limit, remaining: limit}
}

// Spend takes one call from the budget. It returns false, leaving the budget
// unchanged, when no calls remain.
func (b *Budget) Spend() bool {
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}

// Exhausted reports whether no calls remain.
func (b *Budget) Exhausted() bool {
	return b.remaining <= 0
}

// Remaining returns the number of calls left.
func (b *Budget) Remaining() int {
	return b.remaining
}

// Used returns the number of calls spent.
func (b *Budget) Used() int {
	return b.limit - b.remaining
}
