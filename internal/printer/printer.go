package printer

import "github.com/mirrorops/drcmd/internal/model"

// Printer knows how to print execution history and target information in
// different formats.
type Printer interface {
	PrintExecutionList(executions []model.Execution) error
	PrintExecution(execution model.Execution) error
	PrintTargetList(targets []model.Target) error
	PrintMessage(msg string) error
}
