package sort

import (
	"fmt"

	"tiedye/pkg/types"
)

// Report aggregates per-file outcomes in scan order. It performs no I/O;
// rendering belongs to the caller.
type Report struct {
	outcomes []types.MoveOutcome
	counts   map[types.OutcomeStatus]int
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{counts: make(map[types.OutcomeStatus]int)}
}

// Add records one outcome.
func (r *Report) Add(outcome types.MoveOutcome) {
	r.outcomes = append(r.outcomes, outcome)
	r.counts[outcome.Status]++
}

// Outcomes returns the per-file outcomes in the original scan order.
func (r *Report) Outcomes() []types.MoveOutcome {
	return r.outcomes
}

// Count returns the number of outcomes with the given status.
func (r *Report) Count(status types.OutcomeStatus) int {
	return r.counts[status]
}

// Total returns the number of candidate files processed.
func (r *Report) Total() int {
	return len(r.outcomes)
}

// Skipped returns the number of files skipped for any reason.
func (r *Report) Skipped() int {
	return r.counts[types.StatusSkippedCollision] +
		r.counts[types.StatusSkippedNoRule] +
		r.counts[types.StatusSkippedSameLocation]
}

// Summary renders the end-of-run counters as a single line.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d moved, %d skipped (%d no rule), %d failed",
		r.Count(types.StatusMoved),
		r.Skipped(),
		r.Count(types.StatusSkippedNoRule),
		r.Count(types.StatusFailed))
}
