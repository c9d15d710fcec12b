package execution

import (
	"fmt"
	"strings"
	"time"

	"github.com/hostprep/hostprep/internal/domain/step"
)

// Report aggregates the results of one run: counts, per-step lines, and the
// process exit status. Pure aggregation over an ordered result sequence.
type Report struct {
	results []StepResult
}

// NewReport creates a Report over an execution record.
func NewReport(results []StepResult) Report {
	return Report{results: results}
}

// Results returns the ordered execution record.
func (r Report) Results() []StepResult {
	return r.results
}

// Applied returns the number of steps that made a change.
func (r Report) Applied() int {
	return r.count(step.StatusApplied)
}

// Skipped returns the number of steps skipped.
func (r Report) Skipped() int {
	return r.count(step.StatusSkipped)
}

// Failed returns the number of steps that failed.
func (r Report) Failed() int {
	return r.count(step.StatusFailed)
}

// Duration returns the total time spent applying steps.
func (r Report) Duration() time.Duration {
	var total time.Duration
	for i := range r.results {
		total += r.results[i].Duration()
	}
	return total
}

// Success reports whether the run completed with no failures.
func (r Report) Success() bool {
	return r.Failed() == 0
}

// ExitCode determines the process exit status: 0 on full success, and 1 on
// any failure. acceptPartial downgrades failures to 0 only under the
// continue-on-error policy; without it the run halted early and "partial"
// would mean an unknown remainder, not a best-effort pass.
func (r Report) ExitCode(acceptPartial, continueOnError bool) int {
	if r.Success() {
		return 0
	}
	if acceptPartial && continueOnError {
		return 0
	}
	return 1
}

// Summary returns the one-line run summary.
func (r Report) Summary() string {
	return fmt.Sprintf("%d applied, %d skipped, %d failed",
		r.Applied(), r.Skipped(), r.Failed())
}

// Render returns the human-readable multi-line report. Step errors appear as
// step id plus detail, never stack traces.
func (r Report) Render() string {
	var b strings.Builder

	for i := range r.results {
		res := r.results[i]
		switch res.Status() {
		case step.StatusApplied:
			fmt.Fprintf(&b, "  + %s", res.StepID().String())
			if res.Detail() != "" {
				fmt.Fprintf(&b, " (%s)", res.Detail())
			}
		case step.StatusSkipped:
			fmt.Fprintf(&b, "  - %s", res.StepID().String())
			if res.Detail() != "" {
				fmt.Fprintf(&b, " (%s)", res.Detail())
			}
		case step.StatusFailed:
			fmt.Fprintf(&b, "  x %s: %s", res.StepID().String(), res.Detail())
		default:
			fmt.Fprintf(&b, "  ? %s", res.StepID().String())
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nSummary: %s\n", r.Summary())
	return b.String()
}

func (r Report) count(status step.Status) int {
	n := 0
	for i := range r.results {
		if r.results[i].Status() == status {
			n++
		}
	}
	return n
}
