package commands

import "fmt"

// ExitCodeError carries the executed command's exit code out of a command's
// Run, so main can terminate the process with it after the deferred cleanups
// and the run group shutdown have completed.
type ExitCodeError struct {
	Code int
}

func (e ExitCodeError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}
