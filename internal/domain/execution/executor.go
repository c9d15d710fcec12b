package execution

import (
	"context"
	"errors"
	"time"

	"github.com/hostprep/hostprep/internal/domain/step"
	"github.com/hostprep/hostprep/internal/ports"
)

// DefaultStepTimeout bounds a single step's apply. Generous: a full
// package-manager sync on a slow mirror can legitimately take minutes.
const DefaultStepTimeout = 10 * time.Minute

// Executor runs steps from a Plan strictly in order. Ordering is a
// correctness dependency: a service can only be enabled after its package
// is installed, and package managers hold a global lock that forbids
// parallel invocations anyway.
type Executor struct {
	dryRun          bool
	continueOnError bool
	stepTimeout     time.Duration
}

// NewExecutor creates a new Executor with the default halt-on-failure
// policy and step timeout.
func NewExecutor() *Executor {
	return &Executor{stepTimeout: DefaultStepTimeout}
}

// WithDryRun returns an Executor that simulates execution without applying.
func (e *Executor) WithDryRun(dryRun bool) *Executor {
	clone := *e
	clone.dryRun = dryRun
	return &clone
}

// WithContinueOnError returns an Executor that keeps executing after a
// failed step instead of halting. Steps whose dependency failed are still
// skipped.
func (e *Executor) WithContinueOnError(enabled bool) *Executor {
	clone := *e
	clone.continueOnError = enabled
	return &clone
}

// WithStepTimeout returns an Executor with the per-step timeout set.
// A non-positive value restores the default.
func (e *Executor) WithStepTimeout(d time.Duration) *Executor {
	clone := *e
	if d <= 0 {
		d = DefaultStepTimeout
	}
	clone.stepTimeout = d
	return &clone
}

// Execute runs all plan entries in order and returns one result per entry
// attempted, in the same order. Under the default policy the sequence is
// truncated at the first failure. Cancellation of ctx is honored between
// steps, never mid-step: an apply in flight runs on a context detached from
// ctx so an operator interrupt cannot abort a package-manager transaction
// halfway.
func (e *Executor) Execute(ctx context.Context, plan *Plan) []StepResult {
	results := make([]StepResult, 0, plan.Len())
	failed := make(map[string]bool)

	for _, entry := range plan.Entries() {
		// Step boundary: the only cancellation point.
		select {
		case <-ctx.Done():
			return results
		default:
		}

		result := e.executeEntry(ctx, entry, failed)
		results = append(results, result)

		if logger := ports.LoggerFromContext(ctx); logger != nil {
			logger.Debug(ctx, "step finished",
				ports.F("step", result.StepID().String()),
				ports.F("status", string(result.Status())))
		}

		if result.Failed() {
			failed[entry.Step().ID().String()] = true
			if !e.continueOnError {
				break
			}
		}
	}

	return results
}

// executeEntry executes a single plan entry.
func (e *Executor) executeEntry(ctx context.Context, entry PlanEntry, failed map[string]bool) StepResult {
	s := entry.Step()
	stepID := s.ID()

	for _, depID := range s.DependsOn() {
		if failed[depID.String()] {
			return NewStepResult(stepID, step.StatusSkipped, nil).
				WithDetail("dependency failed: " + depID.String())
		}
	}

	// Facts may have changed since planning (a package installed two steps
	// ago), so the check runs again against the live system.
	runCtx := step.NewRunContext(ctx).WithDryRun(e.dryRun)
	status, err := s.Check(runCtx)
	if err != nil {
		status = step.StatusUnknown
	}

	if status == step.StatusSatisfied {
		return NewStepResult(stepID, step.StatusSkipped, nil).
			WithDetail("already satisfied")
	}

	if e.dryRun {
		return NewStepResult(stepID, step.StatusApplied, nil).
			WithDetail("dry run: " + entry.Diff().Summary())
	}

	// The apply context is detached from the caller's cancellation and
	// bounded only by the step timeout.
	applyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.stepTimeout)
	defer cancel()

	start := time.Now()
	err = s.Apply(runCtx.WithContext(applyCtx))
	duration := time.Since(start)

	switch {
	case err == nil:
		return NewStepResult(stepID, step.StatusApplied, nil).
			WithDuration(duration)
	case errors.Is(err, step.ErrSkip):
		return NewStepResult(stepID, step.StatusSkipped, nil).
			WithDuration(duration).
			WithDetail(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return NewStepResult(stepID, step.StatusFailed, step.NewTimeoutError(stepID.String(), err)).
			WithDuration(duration).
			WithDetail("timed out after " + e.stepTimeout.String())
	default:
		return NewStepResult(stepID, step.StatusFailed, step.NewApplyFailedError(stepID.String(), err)).
			WithDuration(duration).
			WithDetail(err.Error())
	}
}
