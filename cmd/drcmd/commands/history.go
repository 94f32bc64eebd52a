package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/mirrorops/drcmd/internal/printer"
	"github.com/mirrorops/drcmd/internal/storage/sqlite"
)

// HistoryCommand lists recorded executions, or shows a single one in full.
type HistoryCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     string
	limit  int
	format string
}

// NewHistoryCommand returns the history command.
func NewHistoryCommand(rootCmd *RootCommand, app *kingpin.Application) *HistoryCommand {
	c := &HistoryCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("history", "List recorded command executions, newest first.")
	c.Cmd.Arg("id", "Show a single execution in full, captured streams included.").StringVar(&c.id)
	c.Cmd.Flag("limit", "Maximum number of executions to show (0 shows all).").Short('n').Default("20").IntVar(&c.limit)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c HistoryCommand) Name() string { return c.Cmd.FullCommand() }

func (c HistoryCommand) Run(ctx context.Context) error {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create history repository: %w", err)
	}
	defer repo.Close()

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if c.id != "" {
		execution, err := repo.GetExecution(ctx, c.id)
		if err != nil {
			return fmt.Errorf("could not get execution: %w", err)
		}
		return p.PrintExecution(*execution)
	}

	executions, err := repo.ListExecutions(ctx, c.limit)
	if err != nil {
		return fmt.Errorf("could not list executions: %w", err)
	}

	return p.PrintExecutionList(executions)
}
