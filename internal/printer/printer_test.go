package printer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorops/drcmd/internal/model"
	"github.com/mirrorops/drcmd/internal/printer"
)

func executionFixture() model.Execution {
	return model.Execution{
		ID:        "01JD0EXAMPLEULID0000000000",
		Target:    "ec2-user@replica.dr.example.com",
		Command:   "/usr/bin/ls /var/lib/db",
		Code:      0,
		Output:    "data\nwal",
		Error:     "",
		StartedAt: time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC),
		Duration:  125 * time.Millisecond,
	}
}

func targetFixture() model.Target {
	return model.Target{
		Name:           "db-replica",
		Host:           "replica.dr.example.com",
		User:           "ec2-user",
		PrivateKeyPath: "/etc/drcmd/replica.pem",
		ConnectTimeout: 30 * time.Second,
	}
}

func TestTablePrinterPrintExecution(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintExecution(executionFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID:       01JD0EXAMPLEULID0000000000")
	assert.Contains(t, out, "Target:   ec2-user@replica.dr.example.com")
	assert.Contains(t, out, "Command:  /usr/bin/ls /var/lib/db")
	assert.Contains(t, out, "Started:  2026-01-30 10:00:00 UTC")
	assert.Contains(t, out, "Output:\ndata\nwal")
	assert.NotContains(t, out, "Error:")
}

func TestTablePrinterPrintExecutionList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintExecutionList([]model.Execution{executionFixture()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "COMMAND")
	assert.Contains(t, out, "01JD0EXAMPLEULID0000000000")
	assert.Contains(t, out, "/usr/bin/ls /var/lib/db")
}

func TestTablePrinterPrintExecutionListEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintExecutionList(nil)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestTablePrinterPrintTargetList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTargetList([]model.Target{targetFixture()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "db-replica")
	assert.Contains(t, out, "ec2-user@replica.dr.example.com")
	assert.Contains(t, out, "30s")
	assert.Contains(t, out, "/etc/drcmd/replica.pem")
}

func TestJSONPrinterPrintExecution(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintExecution(executionFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"id": "01JD0EXAMPLEULID0000000000"`)
	assert.Contains(t, out, `"target": "ec2-user@replica.dr.example.com"`)
	assert.Contains(t, out, `"duration_ms": 125`)
	assert.Contains(t, out, `"output": "data\nwal"`)
}

func TestJSONPrinterPrintExecutionListLeavesStreamsOut(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintExecutionList([]model.Execution{executionFixture()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"id": "01JD0EXAMPLEULID0000000000"`)
	assert.NotContains(t, out, `"output"`)
}

func TestJSONPrinterPrintTargetList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintTargetList([]model.Target{targetFixture()})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"name": "db-replica"`)
	assert.Contains(t, out, `"connect_timeout_seconds": 30`)
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(buf.String()))
}
