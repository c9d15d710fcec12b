// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// CommandResult represents the result of executing an external command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a command invocation.
type CommandCall struct {
	Command string
	Args    []string
}

// CommandRunner executes external commands.
//
// A non-zero exit code is not an error: the result carries the exit code and
// the returned error is reserved for failures to run the command at all
// (binary not found, context deadline exceeded).
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)
}
