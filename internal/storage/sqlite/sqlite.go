// Package sqlite stores the execution history journal in a local SQLite
// database, so operators can audit what ran where during a recovery.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mirrorops/drcmd/internal/log"
	"github.com/mirrorops/drcmd/internal/model"
	"github.com/mirrorops/drcmd/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite history repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite-backed execution history journal.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository opens (creating if needed) the history database and runs
// pending schema migrations.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("History repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// RecordExecution appends one execution to the journal.
func (r *Repository) RecordExecution(ctx context.Context, e model.Execution) error {
	if e.ID == "" {
		return fmt.Errorf("execution id is required: %w", model.ErrNotValid)
	}
	if e.Command == "" {
		return fmt.Errorf("execution command is required: %w", model.ErrNotValid)
	}

	query := `
		INSERT INTO executions (id, target, command, code, output, error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		e.ID,
		e.Target,
		e.Command,
		e.Code,
		e.Output,
		e.Error,
		e.StartedAt.Unix(),
		e.Duration.Milliseconds(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: executions.") {
			return fmt.Errorf("execution already recorded: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert execution: %w", err)
	}

	r.logger.Debugf("Recorded execution %s (code %d)", e.ID, e.Code)
	return nil
}

// GetExecution retrieves a recorded execution by ID.
func (r *Repository) GetExecution(ctx context.Context, id string) (*model.Execution, error) {
	query := `
		SELECT id, target, command, code, output, error, started_at, duration_ms
		FROM executions
		WHERE id = ?
	`

	e, err := scanExecution(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("execution %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query execution: %w", err)
	}

	return e, nil
}

// ListExecutions returns the most recent executions, newest first. A limit of
// 0 returns everything.
func (r *Repository) ListExecutions(ctx context.Context, limit int) ([]model.Execution, error) {
	query := `
		SELECT id, target, command, code, output, error, started_at, duration_ms
		FROM executions
		ORDER BY started_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query executions: %w", err)
	}
	defer rows.Close()

	var executions []model.Execution
	for rows.Next() {
		e, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan execution: %w", err)
		}
		executions = append(executions, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate executions: %w", err)
	}

	return executions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExecution(s scanner) (*model.Execution, error) {
	var e model.Execution
	var startedAt, durationMS int64

	err := s.Scan(&e.ID, &e.Target, &e.Command, &e.Code, &e.Output, &e.Error, &startedAt, &durationMS)
	if err != nil {
		return nil, err
	}

	e.StartedAt = time.Unix(startedAt, 0).UTC()
	e.Duration = time.Duration(durationMS) * time.Millisecond

	return &e, nil
}
