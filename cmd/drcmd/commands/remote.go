package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/mirrorops/drcmd/internal/app/run"
	"github.com/mirrorops/drcmd/internal/model"
	"github.com/mirrorops/drcmd/internal/profile"
	"github.com/mirrorops/drcmd/internal/storage/sqlite"
)

// RemoteCommand executes a command on a remote host through an SSH tunnel.
type RemoteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	command       []string
	envSpecs      []string
	input         []string
	root          bool
	retryAttempts int
	retryInterval time.Duration

	target   string
	host     string
	user     string
	identity string
	timeout  time.Duration
}

// NewRemoteCommand returns the remote command.
func NewRemoteCommand(rootCmd *RootCommand, app *kingpin.Application) *RemoteCommand {
	c := &RemoteCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("remote", "Execute a command on a remote host through an SSH tunnel.")
	c.Cmd.Arg("command", "Command to execute (use -- before command).").Required().StringsVar(&c.command)
	c.Cmd.Flag("target", "Named target from the profiles file.").Short('t').StringVar(&c.target)
	c.Cmd.Flag("host", "Remote host (alternative to --target).").StringVar(&c.host)
	c.Cmd.Flag("user", "SSH login user (alternative to --target).").StringVar(&c.user)
	c.Cmd.Flag("identity", "Path to the PEM private key (alternative to --target).").StringVar(&c.identity)
	c.Cmd.Flag("timeout", "SSH connection timeout (defaults to the profile setting, or 1h).").Default("0").DurationVar(&c.timeout)
	c.Cmd.Flag("env", "Environment exports (KEY=VALUE or KEY from current environment). Can be repeated.").Short('e').StringsVar(&c.envSpecs)
	c.Cmd.Flag("input", "Line to feed to the command stdin. Can be repeated.").Short('i').StringsVar(&c.input)
	c.Cmd.Flag("root", "Execute through sudo on the remote side.").BoolVar(&c.root)
	c.Cmd.Flag("retry", "Retry until the command succeeds, at most this many attempts.").IntVar(&c.retryAttempts)
	c.Cmd.Flag("retry-interval", "Sleep between retry attempts.").Default("10s").DurationVar(&c.retryInterval)

	return c
}

func (c RemoteCommand) Name() string { return c.Cmd.FullCommand() }

func (c RemoteCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	target, err := c.resolveTarget(ctx)
	if err != nil {
		return err
	}

	env, err := parseEnvSpecs(c.envSpecs)
	if err != nil {
		return fmt.Errorf("invalid --env value: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create history repository: %w", err)
	}
	defer repo.Close()

	svc, err := run.NewService(run.ServiceConfig{
		History: repo,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	result, err := svc.Run(ctx, run.Request{
		Argv:          c.command,
		Env:           env,
		Input:         c.input,
		Target:        target,
		Root:          c.root,
		RetryAttempts: c.retryAttempts,
		RetryInterval: c.retryInterval,
	})
	if err != nil {
		return fmt.Errorf("could not execute command: %w", err)
	}

	if result.Output != "" {
		fmt.Fprintln(c.rootCmd.Stdout, result.Output)
	}
	if result.Error != "" {
		fmt.Fprintln(c.rootCmd.Stderr, result.Error)
	}

	// Surface the remote command's exit code to main once cleanups have run.
	if result.Code != 0 {
		return ExitCodeError{Code: result.Code}
	}
	return nil
}

// resolveTarget picks the remote endpoint either from the profiles file or
// from the explicit --host/--user/--identity flags.
func (c RemoteCommand) resolveTarget(ctx context.Context) (*model.Target, error) {
	if c.target != "" {
		repo := profile.NewYAMLRepository(os.DirFS(filepath.Dir(c.rootCmd.ProfilesPath)))
		target, err := repo.GetTarget(ctx, filepath.Base(c.rootCmd.ProfilesPath), c.target)
		if err != nil {
			return nil, fmt.Errorf("could not resolve target: %w", err)
		}
		if c.timeout != 0 {
			target.ConnectTimeout = c.timeout
		}
		return target, nil
	}

	target := &model.Target{
		Name:           c.host,
		Host:           c.host,
		User:           c.user,
		PrivateKeyPath: c.identity,
		ConnectTimeout: c.timeout,
	}
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("--target or --host/--user/--identity are required: %w", err)
	}
	return target, nil
}
