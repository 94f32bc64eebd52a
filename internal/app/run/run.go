// Package run orchestrates single command invocations: it builds the
// command, picks the local or tunneled executor, optionally retries until
// the command succeeds and records the outcome in the history journal.
package run

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mirrorops/drcmd/internal/assure"
	"github.com/mirrorops/drcmd/internal/command"
	"github.com/mirrorops/drcmd/internal/exec"
	"github.com/mirrorops/drcmd/internal/log"
	"github.com/mirrorops/drcmd/internal/model"
)

// LocalTarget is the target label recorded for local executions.
const LocalTarget = "local"

// Recorder journals finished executions.
type Recorder interface {
	RecordExecution(ctx context.Context, e model.Execution) error
}

// ServiceConfig is the configuration for the run service.
type ServiceConfig struct {
	// History is the execution journal. Optional: nil disables journaling.
	History Recorder
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Run"})
	return nil
}

// Service executes commands on behalf of the CLI and SDK callers.
type Service struct {
	history Recorder
	logger  log.Logger
}

// NewService creates a new run service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		history: cfg.History,
		logger:  cfg.Logger,
	}, nil
}

// Request contains the parameters of a single invocation.
type Request struct {
	// Argv is the command tokens, argv[0] being the executable.
	Argv []string
	// Env contains environment exports recorded on the command.
	Env map[string]string
	// Input lines are fed to the process stdin.
	Input []string
	// Target selects remote execution through an SSH tunnel. Nil runs the
	// command on the local host.
	Target *model.Target
	// Root wraps the command in a privilege-elevation command.
	Root bool
	// RetryAttempts, when positive, retries the command with RetryInterval
	// sleeps until it exits 0 or the attempts are exhausted.
	RetryAttempts int
	RetryInterval time.Duration
}

func (r *Request) validate() error {
	if len(r.Argv) == 0 {
		return fmt.Errorf("command cannot be empty: %w", model.ErrNotValid)
	}
	if r.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts cannot be negative: %w", model.ErrNotValid)
	}
	return nil
}

// Run executes the request and returns the final execution result. Non-zero
// exit codes are data on the result, not errors; the returned error covers
// invalid requests, credential preparation and retry exhaustion.
func (s *Service) Run(ctx context.Context, req Request) (*exec.ExecutionResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	cmd := command.New(req.Argv...)
	for k, v := range req.Env {
		cmd.Export(k, v)
	}

	execute, cleanup, err := s.executeFunc(req)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	targetLabel := LocalTarget
	if req.Target != nil {
		targetLabel = req.Target.Address()
	}

	var result exec.ExecutionResult
	attempt := func() (exec.ExecutionResult, error) {
		started := time.Now().UTC()
		res, err := execute(ctx, cmd, req.Input...)
		if err != nil {
			return res, err
		}
		s.record(ctx, targetLabel, started, res)
		return res, nil
	}

	if req.RetryAttempts > 0 {
		assurer, err := assure.NewAssurer(assure.AssurerConfig{
			Attempts: req.RetryAttempts,
			Interval: req.RetryInterval,
			Logger:   s.logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create assurer: %w", err)
		}

		err = assurer.Assure(ctx, func() error {
			res, err := attempt()
			if err != nil {
				return err
			}
			result = res
			if !res.Successful() {
				return fmt.Errorf("command exited with code %d", res.Code)
			}
			return nil
		})
		if err != nil {
			return &result, err
		}
		return &result, nil
	}

	result, err = attempt()
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type executeFunc func(ctx context.Context, cmd command.Command, input ...string) (exec.ExecutionResult, error)

// executeFunc returns the execution strategy for the request: a plain local
// executor, or a tunneled one built from the target's credentials.
func (s *Service) executeFunc(req Request) (execute executeFunc, cleanup func(), err error) {
	if req.Target == nil {
		executor, err := exec.NewExecutor(exec.ExecutorConfig{Logger: s.logger})
		if err != nil {
			return nil, nil, fmt.Errorf("could not create executor: %w", err)
		}

		execute = func(ctx context.Context, cmd command.Command, input ...string) (exec.ExecutionResult, error) {
			if req.Root {
				return executor.ExecuteAsRoot(ctx, cmd, input...), nil
			}
			return executor.Execute(ctx, cmd, input...), nil
		}
		return execute, func() { _ = executor.Close() }, nil
	}

	key, err := os.ReadFile(req.Target.PrivateKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read private key of target %q: %w", req.Target.Name, err)
	}

	remote, err := exec.NewRemoteExecutor(exec.RemoteExecutorConfig{
		Name:           req.Target.Name,
		User:           req.Target.User,
		Host:           req.Target.Host,
		PrivateKey:     key,
		DefaultTimeout: req.Target.ConnectTimeout,
		Logger:         s.logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not create remote executor: %w", err)
	}

	execute = func(ctx context.Context, cmd command.Command, input ...string) (exec.ExecutionResult, error) {
		if req.Root {
			return remote.ExecuteAsRoot(ctx, cmd, input...)
		}
		return remote.Execute(ctx, cmd, input...)
	}
	return execute, func() { _ = remote.Close() }, nil
}

func (s *Service) record(ctx context.Context, target string, started time.Time, res exec.ExecutionResult) {
	if s.history == nil {
		return
	}

	err := s.history.RecordExecution(ctx, model.Execution{
		ID:        res.ID,
		Target:    target,
		Command:   res.Command.AsString(),
		Code:      res.Code,
		Output:    res.Output,
		Error:     res.Error,
		StartedAt: started,
		Duration:  res.Duration,
	})
	if err != nil {
		// The journal is best effort, an unwritable history must not fail
		// the execution itself.
		s.logger.Warningf("Could not record execution %s: %s", res.ID, err)
	}
}
