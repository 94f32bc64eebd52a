package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/mirrorops/drcmd/internal/app/run"
	"github.com/mirrorops/drcmd/internal/storage/sqlite"
)

// RunCommand executes a command on the local host.
type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	command       []string
	envSpecs      []string
	input         []string
	root          bool
	retryAttempts int
	retryInterval time.Duration
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("run", "Execute a command on the local host.")
	c.Cmd.Arg("command", "Command to execute (use -- before command).").Required().StringsVar(&c.command)
	c.Cmd.Flag("env", "Environment exports (KEY=VALUE or KEY from current environment). Can be repeated.").Short('e').StringsVar(&c.envSpecs)
	c.Cmd.Flag("input", "Line to feed to the command stdin. Can be repeated.").Short('i').StringsVar(&c.input)
	c.Cmd.Flag("root", "Execute through sudo.").BoolVar(&c.root)
	c.Cmd.Flag("retry", "Retry until the command succeeds, at most this many attempts.").IntVar(&c.retryAttempts)
	c.Cmd.Flag("retry-interval", "Sleep between retry attempts.").Default("10s").DurationVar(&c.retryInterval)

	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

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

	// Surface the command's exit code to main once cleanups have run.
	if result.Code != 0 {
		return ExitCodeError{Code: result.Code}
	}
	return nil
}
