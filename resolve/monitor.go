package resolve

import "github.com/poiesic/taxonomist/core"

// Monitor provides hooks to observe a resolution.
// Implement this interface to trace intermediate steps of the search.
type Monitor interface {
	Start(query []string)
	AfterExpansion(expanded []string)
	BeforeAttempt(attempt Attempt)
	AfterCall(call core.Call)
	WeakCandidate(attempt Attempt, score float64)
	BudgetExhausted(stage string, used int)
	BeforeBridgeQuery(terms []string)
	Finish(outcome *core.Outcome)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ []string)                   {}
func (n *noopMonitor) AfterExpansion(_ []string)          {}
func (n *noopMonitor) BeforeAttempt(_ Attempt)            {}
func (n *noopMonitor) AfterCall(_ core.Call)              {}
func (n *noopMonitor) WeakCandidate(_ Attempt, _ float64) {}
func (n *noopMonitor) BudgetExhausted(_ string, _ int)    {}
func (n *noopMonitor) BeforeBridgeQuery(_ []string)       {}
func (n *noopMonitor) Finish(_ *core.Outcome)             {}
