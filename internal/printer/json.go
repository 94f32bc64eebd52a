package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/mirrorops/drcmd/internal/model"
)

// JSONPrinter prints execution and target information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// executionItem represents an execution in the list output (captured streams
// left out, they can be arbitrarily large).
type executionItem struct {
	ID         string    `json:"id"`
	Target     string    `json:"target"`
	Command    string    `json:"command"`
	Code       int       `json:"code"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

// executionOutput represents the full execution output.
type executionOutput struct {
	executionItem
	Output string `json:"output"`
	Error  string `json:"error"`
}

// targetItem represents a target in the list output.
type targetItem struct {
	Name              string `json:"name"`
	Host              string `json:"host"`
	User              string `json:"user"`
	PrivateKeyPath    string `json:"private_key_path"`
	ConnectTimeoutSec int64  `json:"connect_timeout_seconds,omitempty"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

func newExecutionItem(e model.Execution) executionItem {
	return executionItem{
		ID:         e.ID,
		Target:     e.Target,
		Command:    e.Command,
		Code:       e.Code,
		StartedAt:  e.StartedAt.UTC(),
		DurationMS: e.Duration.Milliseconds(),
	}
}

// PrintExecutionList prints executions in JSON format with a subset of fields.
func (j *JSONPrinter) PrintExecutionList(executions []model.Execution) error {
	items := make([]executionItem, len(executions))
	for i, e := range executions {
		items[i] = newExecutionItem(e)
	}

	return j.encode(items)
}

// PrintExecution prints one execution in full JSON format.
func (j *JSONPrinter) PrintExecution(execution model.Execution) error {
	return j.encode(executionOutput{
		executionItem: newExecutionItem(execution),
		Output:        execution.Output,
		Error:         execution.Error,
	})
}

// PrintTargetList prints targets in JSON format.
func (j *JSONPrinter) PrintTargetList(targets []model.Target) error {
	items := make([]targetItem, len(targets))
	for i, target := range targets {
		items[i] = targetItem{
			Name:              target.Name,
			Host:              target.Host,
			User:              target.User,
			PrivateKeyPath:    target.PrivateKeyPath,
			ConnectTimeoutSec: int64(target.ConnectTimeout.Seconds()),
		}
	}

	return j.encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
