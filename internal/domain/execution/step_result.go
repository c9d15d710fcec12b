// Package execution handles step orchestration: planning, ordered execution,
// and result aggregation.
package execution

import (
	"time"

	"github.com/hostprep/hostprep/internal/domain/step"
)

// StepResult captures the outcome of executing a single step. Immutable once
// produced; the ordered sequence of StepResults is the execution record.
type StepResult struct {
	stepID   step.ID
	status   step.Status
	detail   string
	err      error
	duration time.Duration
}

// NewStepResult creates a new StepResult.
func NewStepResult(stepID step.ID, status step.Status, err error) StepResult {
	return StepResult{
		stepID: stepID,
		status: status,
		err:    err,
	}
}

// StepID returns the ID of the step that was executed.
func (r StepResult) StepID() step.ID {
	return r.stepID
}

// Status returns the final status of the step.
func (r StepResult) Status() step.Status {
	return r.status
}

// Detail returns the human-readable detail line (e.g. "timed out",
// "already satisfied").
func (r StepResult) Detail() string {
	return r.detail
}

// Error returns any error that occurred during execution.
func (r StepResult) Error() error {
	return r.err
}

// Duration returns how long the step took to execute.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Applied returns true if the step made a change successfully.
func (r StepResult) Applied() bool {
	return r.status == step.StatusApplied
}

// Skipped returns true if the step was skipped.
func (r StepResult) Skipped() bool {
	return r.status == step.StatusSkipped
}

// Failed returns true if the step failed.
func (r StepResult) Failed() bool {
	return r.status == step.StatusFailed
}

// WithDetail returns a new StepResult with the detail line set.
func (r StepResult) WithDetail(detail string) StepResult {
	r.detail = detail
	return r
}

// WithDuration returns a new StepResult with duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}
