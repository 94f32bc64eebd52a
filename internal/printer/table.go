package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mirrorops/drcmd/internal/model"
)

// TablePrinter prints execution and target information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintExecutionList prints executions in a table format, one row per
// execution. Command strings are truncated so the table stays readable.
func (t *TablePrinter) PrintExecutionList(executions []model.Execution) error {
	if len(executions) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tSTARTED\tTARGET\tCODE\tTOOK\tOUTPUT\tCOMMAND")

	for _, e := range executions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			e.ID,
			TimeAgo(e.StartedAt),
			e.Target,
			e.Code,
			e.Duration,
			FormatBytes(int64(len(e.Output))),
			truncate(e.Command, 60),
		)
	}

	return nil
}

// PrintExecution prints one execution in full, captured streams included.
func (t *TablePrinter) PrintExecution(execution model.Execution) error {
	fmt.Fprintf(t.writer, "ID:       %s\n", execution.ID)
	fmt.Fprintf(t.writer, "Target:   %s\n", execution.Target)
	fmt.Fprintf(t.writer, "Command:  %s\n", execution.Command)
	fmt.Fprintf(t.writer, "Code:     %d\n", execution.Code)
	fmt.Fprintf(t.writer, "Started:  %s\n", FormatTimestamp(execution.StartedAt))
	fmt.Fprintf(t.writer, "Took:     %s\n", execution.Duration)

	if execution.Output != "" {
		fmt.Fprintf(t.writer, "\nOutput:\n%s\n", execution.Output)
	}
	if execution.Error != "" {
		fmt.Fprintf(t.writer, "\nError:\n%s\n", execution.Error)
	}

	return nil
}

// PrintTargetList prints targets in a table format.
func (t *TablePrinter) PrintTargetList(targets []model.Target) error {
	if len(targets) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tADDRESS\tTIMEOUT\tKEY")

	for _, target := range targets {
		timeout := "default"
		if target.ConnectTimeout > 0 {
			timeout = target.ConnectTimeout.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			target.Name,
			target.Address(),
			timeout,
			target.PrivateKeyPath,
		)
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
