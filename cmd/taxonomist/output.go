package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/resolve"
)

// traceMonitor prints each resolution step as it happens.
type traceMonitor struct {
	w io.Writer
}

var _ resolve.Monitor = (*traceMonitor)(nil)

func newTraceMonitor(w io.Writer) *traceMonitor {
	return &traceMonitor{w: w}
}

func (t *traceMonitor) Start(query []string) {
	fmt.Fprintf(t.w, "trace: query %s\n", quoteTerms(query))
}

func (t *traceMonitor) AfterExpansion(expanded []string) {
	fmt.Fprintf(t.w, "trace: expanded %s\n", quoteTerms(expanded))
}

func (t *traceMonitor) BeforeAttempt(a resolve.Attempt) {
	fmt.Fprintf(t.w, "trace: attempt set=%d field=%s terms=%s\n", a.TermSet, a.Field, quoteTerms(a.Combination.Terms))
}

func (t *traceMonitor) AfterCall(call core.Call) {
	fmt.Fprintf(t.w, "trace:   %s\n", formatCall(call))
}

func (t *traceMonitor) WeakCandidate(a resolve.Attempt, score float64) {
	fmt.Fprintf(t.w, "trace: weak candidate %s score=%.2f\n", quoteTerms(a.Combination.Terms), score)
}

func (t *traceMonitor) BudgetExhausted(stage string, used int) {
	fmt.Fprintf(t.w, "trace: %s budget exhausted after %d calls\n", stage, used)
}

func (t *traceMonitor) BeforeBridgeQuery(terms []string) {
	fmt.Fprintf(t.w, "trace: bridge %s\n", quoteTerms(terms))
}

func (t *traceMonitor) Finish(outcome *core.Outcome) {
	fmt.Fprintf(t.w, "trace: finished %s with %d calls\n", outcome.Kind, len(outcome.Calls))
}

// writeOutcome prints the outcome kind and its entries.
func writeOutcome(w io.Writer, o *core.Outcome) {
	fmt.Fprintf(w, "Outcome: %s\n", o.Kind)

	switch o.Kind {
	case core.OutcomeDirect:
		writeEntries(w, o.Entries)
	case core.OutcomeStrong, core.OutcomeWeak:
		fmt.Fprintf(w, "Matched %s on %s (score %.2f, %d total)\n", quoteTerms(o.Combination), o.Field, o.Score, o.Total)
		writeEntries(w, o.Entries)
	case core.OutcomeBridged:
		fmt.Fprintf(w, "Bridged through %s\n", quoteTerms(o.BridgeQuery))
		for _, b := range o.Bridged {
			fmt.Fprintf(w, "  %s  %s  (%d records", b.Entry.Code, b.Entry.Name, b.Occurrences)
			if len(b.Examples) > 0 {
				fmt.Fprintf(w, ", e.g. %s", strings.Join(b.Examples, "; "))
			}
			fmt.Fprintln(w, ")")
		}
	case core.OutcomeUnresolved:
		if s := o.Suggestion; s != nil {
			fmt.Fprintln(w, s.Message)
			for _, tip := range s.Tips {
				fmt.Fprintf(w, "  - %s\n", tip)
			}
		}
	}
}

func writeEntries(w io.Writer, entries []*core.TaxonomyEntry) {
	for _, e := range entries {
		fmt.Fprintf(w, "  %s  %s", e.Code, e.Name)
		if e.DeviceClass != "" {
			fmt.Fprintf(w, "  [class %s]", e.DeviceClass)
		}
		fmt.Fprintln(w)
	}
}

// writeCalls prints the call trail in issue order.
func writeCalls(w io.Writer, calls []core.Call) {
	if len(calls) == 0 {
		return
	}
	fmt.Fprintf(w, "Calls (%d):\n", len(calls))
	for i, call := range calls {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, formatCall(call))
	}
}

func formatCall(call core.Call) string {
	var b strings.Builder
	b.WriteString(string(call.Collection))
	if call.Field != "" {
		b.WriteString(" ")
		b.WriteString(call.Field)
	}
	b.WriteString(" ")
	b.WriteString(quoteTerms(call.Terms))
	for _, f := range call.Filters {
		fmt.Fprintf(&b, " %s=%s", f.Field, f.Value)
	}
	fmt.Fprintf(&b, " -> %s", call.Status)
	switch call.Status {
	case core.CallSuccess:
		fmt.Fprintf(&b, " (%d/%d)", call.Count, call.Total)
	case core.CallFailed:
		fmt.Fprintf(&b, " (%s)", call.Err)
	}
	return b.String()
}

func quoteTerms(terms []string) string {
	return "[" + strings.Join(terms, " ") + "]"
}
