package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/csvto/pkg/core"
)

const runColumns = `id, name, backend, status, files, errors, started_at, completed_at`

// CreateRun creates a new run in the running state.
func (s *SQLiteStore) CreateRun(ctx context.Context, name, backend string) (*core.Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	run := &core.Run{
		ID:        generateID(),
		Name:      name,
		Backend:   backend,
		Status:    core.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	s.logger.Debug("creating run", slog.String("id", run.ID), slog.String("name", name))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, name, backend, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Name, run.Backend, string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	return run, nil
}

// RecordFileRun stores the result of one input. Positions are assigned in
// call order.
func (s *SQLiteStore) RecordFileRun(ctx context.Context, fr core.FileRun) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO file_runs (run_id, position, table_name, source, rows_parsed, rows_stored)
		 VALUES (?, (SELECT COUNT(*) FROM file_runs WHERE run_id = ?), ?, ?, ?, ?)`,
		fr.RunID, fr.RunID, fr.Table, fr.Source, fr.RowsParsed, fr.RowsStored,
	)
	if err != nil {
		return fmt.Errorf("failed to record file run for %s: %w", fr.Source, err)
	}
	return nil
}

// CompleteRun marks a run as finished with the given status and counts.
func (s *SQLiteStore) CompleteRun(ctx context.Context, id string, status core.RunStatus, files, errs int) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, files = ?, errors = ?, completed_at = ? WHERE id = ?`,
		string(status), files, errs, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*core.Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns retrieves the most recent runs up to the given limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*core.Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*core.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ListFileRuns returns the per-input results of a run in recorded order.
func (s *SQLiteStore) ListFileRuns(ctx context.Context, runID string) ([]core.FileRun, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, table_name, source, rows_parsed, rows_stored
		 FROM file_runs WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list file runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []core.FileRun
	for rows.Next() {
		var fr core.FileRun
		if err := rows.Scan(&fr.RunID, &fr.Table, &fr.Source, &fr.RowsParsed, &fr.RowsStored); err != nil {
			return nil, fmt.Errorf("failed to scan file run: %w", err)
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*core.Run, error) {
	run := &core.Run{}
	var status string
	var completedAt sql.NullTime
	if err := row.Scan(&run.ID, &run.Name, &run.Backend, &status,
		&run.Files, &run.Errors, &run.StartedAt, &completedAt); err != nil {
		return nil, err
	}
	run.Status = core.RunStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	return run, nil
}
