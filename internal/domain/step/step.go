// Package step defines the declarative step model: an idempotent unit of
// desired host state with a check/apply pair, plus the graph that orders
// steps for execution.
package step

// Step represents an idempotent unit of desired host configuration.
// Each step can check its current state, describe the pending change,
// and apply it.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() ID

	// DependsOn returns the IDs of steps that must complete before this one.
	DependsOn() []ID

	// Check determines the current status of this step. It must be free of
	// side effects and re-evaluatable any number of times. Immediately after
	// a successful Apply of the same target it must report StatusSatisfied.
	Check(ctx RunContext) (Status, error)

	// Plan returns the diff describing what change this step will make.
	Plan(ctx RunContext) (Diff, error)

	// Apply executes the step's change. Running it again after success
	// produces no further change.
	Apply(ctx RunContext) error
}
