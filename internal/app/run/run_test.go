package run_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorops/drcmd/internal/app/run"
	"github.com/mirrorops/drcmd/internal/assure"
	"github.com/mirrorops/drcmd/internal/model"
)

type recorderMock struct {
	mu         sync.Mutex
	executions []model.Execution
	err        error
}

func (r *recorderMock) RecordExecution(_ context.Context, e model.Execution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.executions = append(r.executions, e)
	return nil
}

func (r *recorderMock) recorded() []model.Execution {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Execution{}, r.executions...)
}

func newService(t *testing.T, history run.Recorder) *run.Service {
	t.Helper()
	svc, err := run.NewService(run.ServiceConfig{History: history})
	require.NoError(t, err)
	return svc
}

func TestServiceRunLocal(t *testing.T) {
	tests := map[string]struct {
		req       run.Request
		expErr    bool
		expCode   int
		expOutput string
	}{
		"A successful command should return its output and code 0": {
			req:       run.Request{Argv: []string{"/bin/echo", "hello"}},
			expCode:   0,
			expOutput: "hello",
		},

		"Environment exports should reach the command": {
			req: run.Request{
				Argv: []string{"/bin/sh", "-c", "echo $DRCMD_RUN_TEST"},
				Env:  map[string]string{"DRCMD_RUN_TEST": "wired"},
			},
			expCode:   0,
			expOutput: "wired",
		},

		"Input lines should be fed to stdin": {
			req: run.Request{
				Argv:  []string{"/bin/cat"},
				Input: []string{"line1", "line2"},
			},
			expCode:   0,
			expOutput: "line1\nline2",
		},

		"A failing command should report its code without an error": {
			req:     run.Request{Argv: []string{"/bin/sh", "-c", "exit 3"}},
			expCode: 3,
		},

		"An empty command should fail validation": {
			req:    run.Request{},
			expErr: true,
		},

		"Negative retry attempts should fail validation": {
			req:    run.Request{Argv: []string{"/bin/true"}, RetryAttempts: -1},
			expErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			svc := newService(t, nil)

			result, err := svc.Run(context.Background(), tc.req)

			if tc.expErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrNotValid))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expCode, result.Code)
			assert.Equal(t, tc.expOutput, result.Output)
		})
	}
}

func TestServiceRunRecordsHistory(t *testing.T) {
	history := &recorderMock{}
	svc := newService(t, history)

	result, err := svc.Run(context.Background(), run.Request{Argv: []string{"/bin/echo", "journaled"}})
	require.NoError(t, err)

	recorded := history.recorded()
	require.Len(t, recorded, 1)
	assert.Equal(t, result.ID, recorded[0].ID)
	assert.Equal(t, run.LocalTarget, recorded[0].Target)
	assert.Equal(t, "/bin/echo journaled", recorded[0].Command)
	assert.Equal(t, 0, recorded[0].Code)
	assert.Equal(t, "journaled", recorded[0].Output)
	assert.False(t, recorded[0].StartedAt.IsZero())
}

func TestServiceRunBrokenHistoryDoesNotFailTheExecution(t *testing.T) {
	history := &recorderMock{err: errors.New("journal on fire")}
	svc := newService(t, history)

	result, err := svc.Run(context.Background(), run.Request{Argv: []string{"/bin/echo", "hello"}})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Code)
}

func TestServiceRunRetriesUntilSuccess(t *testing.T) {
	history := &recorderMock{}
	svc := newService(t, history)

	// The marker file makes the command fail on the first attempt only.
	marker := t.TempDir() + "/first-attempt"
	script := "if [ ! -f " + marker + " ]; then touch " + marker + "; exit 1; fi"

	result, err := svc.Run(context.Background(), run.Request{
		Argv:          []string{"/bin/sh", "-c", script},
		RetryAttempts: 3,
		RetryInterval: time.Millisecond,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Code)
	// Every attempt lands in the journal, not just the final one.
	assert.Len(t, history.recorded(), 2)
}

func TestServiceRunRetryExhaustion(t *testing.T) {
	history := &recorderMock{}
	svc := newService(t, history)

	result, err := svc.Run(context.Background(), run.Request{
		Argv:          []string{"/bin/sh", "-c", "exit 7"},
		RetryAttempts: 3,
		RetryInterval: time.Millisecond,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, assure.ErrExhausted))
	require.NotNil(t, result)
	assert.Equal(t, 7, result.Code)
	assert.Len(t, history.recorded(), 3)
}

func TestServiceRunUnreadableTargetKey(t *testing.T) {
	svc := newService(t, nil)

	_, err := svc.Run(context.Background(), run.Request{
		Argv: []string{"/bin/echo", "hello"},
		Target: &model.Target{
			Name:           "db-replica",
			Host:           "replica.dr.example.com",
			User:           "ec2-user",
			PrivateKeyPath: "/this/key/does/not/exist.pem",
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db-replica")
}

func TestServiceRunAsRoot(t *testing.T) {
	svc := newService(t, nil)

	// sudo may not be available, the wrapping is asserted through the
	// command reference on the result.
	result, err := svc.Run(context.Background(), run.Request{
		Argv: []string{"/bin/echo", "hello"},
		Root: true,
	})

	require.NoError(t, err)
	require.NotNil(t, result.Command)
	assert.Equal(t, "/usr/bin/sudo /bin/echo hello", result.Command.AsString())
}
