// Package errors provides sentinel errors and custom error types for the stacktrain application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrToolMissing indicates that a required external tool is not installed
	ErrToolMissing = errors.New("required tool is not available")

	// ErrNoGitHubToken indicates that no GitHub credentials could be found
	ErrNoGitHubToken = errors.New("no GitHub token available")

	// ErrWaitTimedOut indicates that polling gave up before the host caught up
	ErrWaitTimedOut = errors.New("gave up waiting for the pull request to update")

	// ErrInteractiveDisabled is returned when a confirmation is required but no terminal is attached
	ErrInteractiveDisabled = errors.New("interactive prompts are disabled")
)

// CommandError represents an error from an external command execution
type CommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", strings.TrimSpace(e.Stderr))
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", strings.TrimSpace(e.Stdout))
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError
func NewCommandError(command string, args []string, stdout, stderr string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// PreconditionError reports a tool or credential the process needs before it can start
type PreconditionError struct {
	Tool string
	Hint string
	Err  error
}

func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("%s is not available", e.Tool)
	if e.Hint != "" {
		msg += ": " + e.Hint
	}
	return msg
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrToolMissing
func (e *PreconditionError) Is(target error) bool {
	return target == ErrToolMissing
}

// NewPreconditionError creates a new PreconditionError
func NewPreconditionError(tool, hint string, err error) *PreconditionError {
	return &PreconditionError{Tool: tool, Hint: hint, Err: err}
}

// BranchError wraps a failure that happened while processing a single branch
type BranchError struct {
	BranchName string
	Number     int
	Err        error
}

func (e *BranchError) Error() string {
	if e.Number > 0 {
		return fmt.Sprintf("%s (#%d): %v", e.BranchName, e.Number, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.BranchName, e.Err)
}

func (e *BranchError) Unwrap() error {
	return e.Err
}

// NewBranchError creates a new BranchError
func NewBranchError(branchName string, number int, err error) *BranchError {
	return &BranchError{BranchName: branchName, Number: number, Err: err}
}
