package toolkit

import (
	"context"

	"github.com/mirrorops/drcmd/internal/assure"
	"github.com/mirrorops/drcmd/internal/command"
	"github.com/mirrorops/drcmd/internal/exec"
	"github.com/mirrorops/drcmd/internal/model"
)

// Command types.
type (
	// Command is the read-only view of a built command.
	Command = command.Command
	// Builder accumulates tokens and exports for an ad-hoc command.
	Builder = command.Builder
)

// Execution types.
type (
	// ExecutionResult is the outcome of a single command execution.
	ExecutionResult = exec.ExecutionResult
	// Executor runs commands as child processes on the local host.
	Executor = exec.Executor
	// ExecutorConfig configures an Executor.
	ExecutorConfig = exec.ExecutorConfig
	// RemoteExecutor runs commands on a remote host through an ssh tunnel.
	RemoteExecutor = exec.RemoteExecutor
	// RemoteExecutorConfig configures a RemoteExecutor.
	RemoteExecutorConfig = exec.RemoteExecutorConfig
)

// Retry types.
type (
	// Assurer retries fallible operations with a bounded, fixed-interval policy.
	Assurer = assure.Assurer
	// AssurerConfig configures an Assurer.
	AssurerConfig = assure.AssurerConfig
)

// Target describes a remote SSH endpoint.
type Target = model.Target

// ErrExhausted is returned when an assured operation never succeeded within
// the configured attempts.
var ErrExhausted = assure.ErrExhausted

// NewCommand returns a builder seeded with the given tokens.
func NewCommand(tokens ...string) *Builder { return command.New(tokens...) }

// NewExecutor creates a local command executor. Close must be called to
// release its drainer pool.
func NewExecutor(cfg ExecutorConfig) (*Executor, error) { return exec.NewExecutor(cfg) }

// NewRemoteExecutor creates an ssh-tunneled command executor. Close must be
// called to release it.
func NewRemoteExecutor(cfg RemoteExecutorConfig) (*RemoteExecutor, error) {
	return exec.NewRemoteExecutor(cfg)
}

// NewAssurer creates an assurer with an explicit retry policy.
func NewAssurer(cfg AssurerConfig) (*Assurer, error) { return assure.NewAssurer(cfg) }

// Assure retries op with the default policy: 18 attempts, 10 seconds apart.
func Assure(ctx context.Context, op func() error) error { return assure.Assure(ctx, op) }
