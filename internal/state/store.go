// Package state records the history of load runs in a local SQLite
// database. Each run keeps one row per input with its reconciliation
// counts.
package state

import (
	"context"
	"errors"

	"github.com/leapstack-labs/csvto/pkg/core"
)

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

// Store persists run history.
type Store interface {
	CreateRun(ctx context.Context, name, backend string) (*core.Run, error)
	RecordFileRun(ctx context.Context, fr core.FileRun) error
	CompleteRun(ctx context.Context, id string, status core.RunStatus, files, errors int) error
	GetRun(ctx context.Context, id string) (*core.Run, error)
	ListRuns(ctx context.Context, limit int) ([]*core.Run, error)
	ListFileRuns(ctx context.Context, runID string) ([]core.FileRun, error)
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
