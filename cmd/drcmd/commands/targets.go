package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/mirrorops/drcmd/internal/printer"
	"github.com/mirrorops/drcmd/internal/profile"
)

// TargetsCommand lists the remote targets registered in the profiles file.
type TargetsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewTargetsCommand returns the targets command.
func NewTargetsCommand(rootCmd *RootCommand, app *kingpin.Application) *TargetsCommand {
	c := &TargetsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("targets", "List the remote targets registered in the profiles file.")
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c TargetsCommand) Name() string { return c.Cmd.FullCommand() }

func (c TargetsCommand) Run(ctx context.Context) error {
	path := c.rootCmd.ProfilesPath
	repo := profile.NewYAMLRepository(os.DirFS(filepath.Dir(path)))

	targets, err := repo.ListTargets(ctx, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("could not list targets: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	return p.PrintTargetList(targets)
}
