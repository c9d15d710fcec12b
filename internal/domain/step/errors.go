package step

import "fmt"

// Error codes for step operations.
const (
	ErrCodeApplyFailed = "APPLY_FAILED"
	ErrCodeTimeout     = "TIMEOUT"
)

// Error is a step error with a code and an actionable suggestion.
type Error struct {
	Code       string // Error code for categorization
	Message    string // User-friendly error message
	StepID     string // Step ID if applicable
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	if e.StepID != "" {
		return fmt.Sprintf("step %q: %s", e.StepID, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewApplyFailedError creates an error for step apply failure.
func NewApplyFailedError(stepID string, err error) *Error {
	return &Error{
		Code:       ErrCodeApplyFailed,
		Message:    "step failed to apply",
		StepID:     stepID,
		Suggestion: "Check the error details; re-running the plan retries only unsatisfied steps.",
		Underlying: err,
	}
}

// NewTimeoutError creates an error for a step exceeding its allotted time.
func NewTimeoutError(stepID string, err error) *Error {
	return &Error{
		Code:       ErrCodeTimeout,
		Message:    "step timed out",
		StepID:     stepID,
		Suggestion: "Increase step_timeout in the settings file or pass --step-timeout.",
		Underlying: err,
	}
}
