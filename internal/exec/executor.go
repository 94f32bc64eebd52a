// Package exec executes declaratively built commands, either as child
// processes of the current host or tunneled to a remote host over ssh, and
// captures their output deterministically.
package exec

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	osexec "os/exec"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mirrorops/drcmd/internal/command"
	"github.com/mirrorops/drcmd/internal/log"
)

const (
	// drainWorkers is sized to match the two output streams of a process.
	// Fewer would reintroduce the pipe-deadlock this executor exists to
	// avoid, more would sit idle.
	drainWorkers = 2

	// closeTimeout bounds how long Close waits for in-flight drainers.
	closeTimeout = time.Minute

	labelOutput = "OUTPUT"
	labelError  = "ERROR"
)

// ExecutorConfig is the configuration for the local executor.
type ExecutorConfig struct {
	// Name identifies the executor instance in logs.
	Name   string
	Logger log.Logger
}

func (c *ExecutorConfig) defaults() error {
	if c.Name == "" {
		c.Name = "executor"
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "exec.Executor", "name": c.Name})
	return nil
}

// Executor runs commands as child processes of the current host.
//
// Each execution involves three concurrent parties: the calling goroutine,
// which starts the process, feeds its stdin and waits; and two pooled drainer
// goroutines that consume stdout and stderr line by line until end of stream.
// Draining both streams concurrently with the process is what keeps a chatty
// command from filling an OS pipe buffer and hanging the execution.
//
// The pool is owned for the lifetime of the instance and holds exactly two
// workers, so one Execute call occupies the whole pool; concurrent calls on
// the same instance serialize on worker availability. Callers needing
// execution-level parallelism should create separate executors. Close must be
// called to release the pool.
type Executor struct {
	logger    log.Logger
	tasks     chan drainTask
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type drainTask struct {
	label  string
	stream io.Reader
	result chan<- string
}

// NewExecutor creates a local command executor and starts its drainer pool.
func NewExecutor(cfg ExecutorConfig) (*Executor, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Executor{
		logger: cfg.Logger,
		tasks:  make(chan drainTask),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	var wg sync.WaitGroup
	wg.Add(drainWorkers)
	for i := 0; i < drainWorkers; i++ {
		go func() {
			defer wg.Done()
			e.drainWorker()
		}()
	}
	go func() {
		wg.Wait()
		close(e.done)
	}()

	return e, nil
}

// Execute runs the command and blocks until the process has terminated and
// both streams are fully captured, then returns the result. Optional input
// lines are written newline-terminated to the process stdin before waiting.
//
// Execute never returns an error: a process that could not be started, or a
// wait aborted by context cancellation, is reported as a result with code 1
// and logged. Cancellation does not kill the spawned process; it is reaped in
// the background once it exits on its own (see package docs for the
// tradeoff).
func (e *Executor) Execute(ctx context.Context, cmd command.Command, input ...string) ExecutionResult {
	id := ulid.Make().String()
	logger := e.logger.WithValues(log.Kv{"execution": id})
	start := time.Now()

	failed := func() ExecutionResult {
		return ExecutionResult{ID: id, Code: 1, Command: cmd, Duration: time.Since(start)}
	}

	select {
	case <-e.quit:
		logger.Errorf("Executor is closed")
		return failed()
	default:
	}

	logger.Debugf("Execute: %s", cmd.AsString())

	tokens := cmd.AsList()
	if len(tokens) == 0 {
		logger.Errorf("Command has no tokens")
		return failed()
	}
	proc := osexec.Command(tokens[0], tokens[1:]...)
	proc.Env = environWithExports(cmd.Exports())

	stdout, err := proc.StdoutPipe()
	if err != nil {
		logger.Errorf("Could not open stdout pipe: %s", err)
		return failed()
	}
	stderr, err := proc.StderrPipe()
	if err != nil {
		logger.Errorf("Could not open stderr pipe: %s", err)
		return failed()
	}

	var stdin io.WriteCloser
	if len(input) > 0 {
		stdin, err = proc.StdinPipe()
		if err != nil {
			logger.Errorf("Could not open stdin pipe: %s", err)
			return failed()
		}
	}

	if err := proc.Start(); err != nil {
		logger.Errorf("Unable to start process: %s", err)
		return failed()
	}

	outCh := make(chan string, 1)
	errCh := make(chan string, 1)
	if !e.submit(drainTask{labelOutput, stdout, outCh}, logger) ||
		!e.submit(drainTask{labelError, stderr, errCh}, logger) {
		// The pool went away mid-execution, nothing left to drain the
		// process with. Kill it instead of leaving it blocked on a full
		// pipe forever.
		_ = proc.Process.Kill()
		_ = proc.Wait()
		return failed()
	}

	if stdin != nil {
		if err := writeInput(stdin, input); err != nil {
			logger.Errorf("Could not write process input: %s", err)
		}
	}

	resultCh := make(chan ExecutionResult, 1)
	go func() {
		// Both drains reach EOF only after the process has closed its
		// stream ends, so Wait is safe to call afterwards.
		output := <-outCh
		errOutput := <-errCh

		code := 0
		if err := proc.Wait(); err != nil {
			var exitErr *osexec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else {
				logger.Errorf("Unable to execute command %q: %s", cmd.AsString(), err)
				code = 1
			}
		}

		resultCh <- ExecutionResult{
			ID:       id,
			Code:     code,
			Output:   output,
			Error:    errOutput,
			Command:  cmd,
			Duration: time.Since(start),
		}
	}()

	select {
	case result := <-resultCh:
		return result
	case <-ctx.Done():
		// Abort the wait but leave the child running; the collector
		// goroutine above keeps draining and reaps it when it exits.
		logger.Errorf("Canceled while waiting for command %q: %s", cmd.AsString(), ctx.Err())
		return failed()
	}
}

// ExecuteAsRoot runs the command wrapped in a privilege-elevation command.
func (e *Executor) ExecuteAsRoot(ctx context.Context, cmd command.Command, input ...string) ExecutionResult {
	return e.Execute(ctx, command.NewSudo().Wrap(cmd), input...)
}

// Close stops the drainer pool. It requests a graceful stop, waits up to one
// minute for in-flight drainers to finish and abandons them afterwards. It is
// idempotent and safe to call with no executions in flight.
func (e *Executor) Close() error {
	e.closeOnce.Do(func() { close(e.quit) })

	select {
	case <-e.done:
		return nil
	case <-time.After(closeTimeout):
		e.logger.Warningf("Drainers still busy after %s, abandoning them", closeTimeout)
		return nil
	}
}

func (e *Executor) submit(task drainTask, logger log.Logger) bool {
	select {
	case e.tasks <- task:
		return true
	case <-e.quit:
		logger.Errorf("Executor closed, drain task rejected")
		return false
	}
}

func (e *Executor) drainWorker() {
	for {
		select {
		case task := <-e.tasks:
			task.result <- e.drain(task.label, task.stream)
		case <-e.quit:
			return
		}
	}
}

// drain consumes a stream to completion, logging every line as it arrives so
// a long-running command can be observed in flight, and returns the
// accumulated text with the final trailing newline removed.
//
// Lines have no length limit: a reader that stopped mid-stream would leave
// the process blocked on a full pipe forever, so even on a read error the
// remainder of the stream is consumed before returning.
func (e *Executor) drain(label string, stream io.Reader) string {
	var sb strings.Builder

	reader := bufio.NewReader(stream)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteByte('\n')
			e.logger.Debugf("[%s] %s", label, strings.TrimSuffix(line, "\n"))
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				e.logger.Errorf("Could not read %s stream: %s", label, err)
				_, _ = io.Copy(io.Discard, stream)
			}
			break
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func writeInput(stdin io.WriteCloser, input []string) error {
	defer stdin.Close()

	w := bufio.NewWriter(stdin)
	for _, line := range input {
		if _, err := w.WriteString(line); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

func environWithExports(exports map[string]string) []string {
	env := os.Environ()
	for k, v := range exports {
		env = append(env, k+"="+v)
	}
	return env
}
