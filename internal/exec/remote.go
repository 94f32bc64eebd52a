package exec

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/mirrorops/drcmd/internal/command"
	"github.com/mirrorops/drcmd/internal/log"
)

// DefaultRemoteTimeout is the default connection timeout for a single
// tunneled execution.
const DefaultRemoteTimeout = time.Hour

// RemoteExecutorConfig is the configuration for the remote executor.
type RemoteExecutorConfig struct {
	// Name identifies the executor instance in logs.
	Name string
	// User is the SSH login user.
	User string
	// Host is the SSH login host.
	Host string
	// PrivateKey is the PEM-encoded private key authenticating the login.
	PrivateKey []byte
	// DefaultTimeout is the connection timeout used by Execute (default: 1h).
	DefaultTimeout time.Duration
	Logger         log.Logger
}

func (c *RemoteExecutorConfig) defaults() error {
	if c.User == "" {
		return fmt.Errorf("user is required")
	}
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if len(c.PrivateKey) == 0 {
		return fmt.Errorf("private key is required")
	}
	if _, err := ssh.ParsePrivateKey(c.PrivateKey); err != nil {
		return fmt.Errorf("could not parse private key: %w", err)
	}
	if c.Name == "" {
		c.Name = "remote-executor"
	}
	if c.DefaultTimeout == 0 {
		c.DefaultTimeout = DefaultRemoteTimeout
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "exec.RemoteExecutor", "host": c.Host})
	return nil
}

// RemoteExecutor re-expresses commands as ssh invocations so they run on a
// remote host, and delegates the actual execution to a local Executor. A
// typical composed command looks like:
//
//	/usr/bin/ssh -tt -oUserKnownHostsFile=/dev/null -oStrictHostKeyChecking=no
//	  -oConnectTimeout=3600 -i /tmp/2840241185.key ec2-user@host /usr/bin/ls /
//
// Host-key verification is disabled on purpose: disaster-recovery hosts are
// ephemeral and are never seen twice, so there is no key continuity to
// verify. The private key is written to a fresh temporary identity file for
// every call and removed once the execution finishes.
type RemoteExecutor struct {
	executor *Executor
	user     string
	host     string
	key      []byte
	timeout  time.Duration
	logger   log.Logger
}

// NewRemoteExecutor creates a remote executor with its own local executor
// underneath. Close must be called to release it.
func NewRemoteExecutor(cfg RemoteExecutorConfig) (*RemoteExecutor, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	executor, err := NewExecutor(ExecutorConfig{Name: cfg.Name, Logger: cfg.Logger})
	if err != nil {
		return nil, fmt.Errorf("could not create local executor: %w", err)
	}

	return &RemoteExecutor{
		executor: executor,
		user:     cfg.User,
		host:     cfg.Host,
		key:      cfg.PrivateKey,
		timeout:  cfg.DefaultTimeout,
		logger:   cfg.Logger,
	}, nil
}

// Execute runs the command on the remote host with the default timeout. The
// returned error is non-nil only when the identity file could not be
// prepared; execution failures are reported in the result, as with the local
// executor.
func (e *RemoteExecutor) Execute(ctx context.Context, cmd command.Command, input ...string) (ExecutionResult, error) {
	return e.ExecuteWithTimeout(ctx, e.timeout, cmd, input...)
}

// ExecuteWithTimeout runs the command on the remote host with an explicit
// connection timeout.
func (e *RemoteExecutor) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, cmd command.Command, input ...string) (ExecutionResult, error) {
	tunnel, keyPath, err := e.tunnel(cmd, timeout)
	if err != nil {
		return ExecutionResult{}, err
	}
	defer os.Remove(keyPath)

	return e.executor.Execute(ctx, tunnel, input...), nil
}

// ExecuteAsRoot runs the command on the remote host wrapped in a
// privilege-elevation command, so the remote side runs it as root.
func (e *RemoteExecutor) ExecuteAsRoot(ctx context.Context, cmd command.Command, input ...string) (ExecutionResult, error) {
	return e.ExecuteWithTimeout(ctx, e.timeout, command.NewSudo().Wrap(cmd), input...)
}

// Close releases the underlying local executor.
func (e *RemoteExecutor) Close() error {
	return e.executor.Close()
}

// tunnel wraps cmd in an ssh invocation targeting the executor's host,
// materializing the private key as a transient identity file. The caller owns
// the returned key path and removes it when done with the command.
func (e *RemoteExecutor) tunnel(cmd command.Command, timeout time.Duration) (command.Command, string, error) {
	keyPath, err := e.writeIdentityFile()
	if err != nil {
		return nil, "", fmt.Errorf("could not prepare identity file: %w", err)
	}

	tunnel := command.NewSsh().
		Tty().
		NullHostFile().
		NoKeyChecking().
		ConnectTimeout(int64(timeout.Seconds())).
		Identity(keyPath).
		UserHost(e.user, e.host).
		Remote(cmd)

	return tunnel, keyPath, nil
}

func (e *RemoteExecutor) writeIdentityFile() (string, error) {
	f, err := os.CreateTemp("", "*.key")
	if err != nil {
		return "", fmt.Errorf("could not create key file: %w", err)
	}
	defer f.Close()

	if err := f.Chmod(0600); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("could not restrict key file permissions: %w", err)
	}
	if _, err := f.Write(e.key); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("could not write key file: %w", err)
	}

	return f.Name(), nil
}
