package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorops/drcmd/internal/log"
	"github.com/mirrorops/drcmd/internal/model"
	"github.com/mirrorops/drcmd/internal/storage/sqlite"
)

func executionFixture(id string, startedAt time.Time) model.Execution {
	return model.Execution{
		ID:        id,
		Target:    "db-replica",
		Command:   "/usr/bin/ls /var/lib/db",
		Code:      0,
		Output:    "data\nwal",
		Error:     "",
		StartedAt: startedAt,
		Duration:  125 * time.Millisecond,
	}
}

func newRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
		Logger: log.Noop,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepositoryRecordAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	startedAt := time.Now().UTC().Truncate(time.Second)
	exec := executionFixture("exec-1", startedAt)
	require.NoError(t, repo.RecordExecution(ctx, exec))

	got, err := repo.GetExecution(ctx, "exec-1")
	require.NoError(t, err)
	assert.Equal(t, exec, *got)
}

func TestRepositoryConstraints(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	startedAt := time.Now().UTC()
	require.NoError(t, repo.RecordExecution(ctx, executionFixture("exec-1", startedAt)))

	err := repo.RecordExecution(ctx, executionFixture("exec-1", startedAt))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrAlreadyExists))

	err = repo.RecordExecution(ctx, executionFixture("", startedAt))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotValid))

	noCommand := executionFixture("exec-2", startedAt)
	noCommand.Command = ""
	err = repo.RecordExecution(ctx, noCommand)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotValid))

	_, err = repo.GetExecution(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		exec := executionFixture(fmt.Sprintf("exec-%d", i), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, repo.RecordExecution(ctx, exec))
	}

	all, err := repo.ListExecutions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "exec-4", all[0].ID)
	assert.Equal(t, "exec-0", all[4].ID)

	limited, err := repo.ListExecutions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "exec-4", limited[0].ID)
	assert.Equal(t, "exec-3", limited[1].ID)
}

func TestRepositoryListEmpty(t *testing.T) {
	repo := newRepo(t)

	all, err := repo.ListExecutions(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepositoryPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{DBPath: dbPath, Logger: log.Noop})
	require.NoError(t, err)
	require.NoError(t, repo.RecordExecution(ctx, executionFixture("exec-1", time.Now().UTC())))
	require.NoError(t, repo.Close())

	reopened, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{DBPath: dbPath, Logger: log.Noop})
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.GetExecution(ctx, "exec-1")
	require.NoError(t, err)
	assert.Equal(t, "exec-1", got.ID)
}
