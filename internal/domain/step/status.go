package step

// Status represents the state of a step, both at planning time and as the
// final outcome of an execution.
type Status string

const (
	// StatusSatisfied indicates the step's desired state is already met.
	StatusSatisfied Status = "satisfied"
	// StatusNeedsApply indicates the step needs to be applied.
	StatusNeedsApply Status = "needs-apply"
	// StatusUnknown indicates the step's state could not be determined.
	// Probes fail soft: unknown is treated as "not present" and planned
	// for apply.
	StatusUnknown Status = "unknown"

	// StatusApplied indicates the step was executed successfully.
	StatusApplied Status = "applied"
	// StatusSkipped indicates the step was not executed: either its target
	// state was already satisfied, a dependency failed, or its anchor was
	// not found.
	StatusSkipped Status = "skipped"
	// StatusFailed indicates the step failed during apply.
	StatusFailed Status = "failed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// NeedsAction returns true if this status requires execution.
func (s Status) NeedsAction() bool {
	return s == StatusNeedsApply || s == StatusUnknown
}

// IsTerminal returns true if this status is a final execution outcome.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApplied, StatusSkipped, StatusFailed:
		return true
	default:
		return false
	}
}
