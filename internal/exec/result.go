package exec

import (
	"fmt"
	"time"

	"github.com/mirrorops/drcmd/internal/command"
)

// ExecutionResult is the immutable outcome of a single command execution:
// the exit code, both captured streams (trailing newline stripped) and a
// back-reference to the command that produced it.
type ExecutionResult struct {
	// ID uniquely identifies the execution attempt.
	ID string
	// Code is the process exit code. A spawn failure or an aborted wait is
	// reported as 1.
	Code int
	// Output is the captured standard output.
	Output string
	// Error is the captured standard error.
	Error string
	// Command is the command that was executed, for diagnostics.
	Command command.Command
	// Duration is the wall time of the execution as observed by the caller.
	Duration time.Duration
}

// Successful reports whether the command exited with code 0.
func (r ExecutionResult) Successful() bool {
	return r.Code == 0
}

func (r ExecutionResult) String() string {
	return fmt.Sprintf("Code: %d, Output:\n%s\nError:\n%s\n", r.Code, r.Output, r.Error)
}
