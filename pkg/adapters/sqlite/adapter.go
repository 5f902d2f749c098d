// Package sqlite provides a SQLite storage adapter backed by the pure Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/csvto/pkg/adapter"
	"github.com/leapstack-labs/csvto/pkg/core"

	_ "modernc.org/sqlite" // sqlite driver
)

// Adapter implements the adapter.Adapter interface for SQLite.
//
// Rows are inserted with bound parameters inside one transaction per
// StoreData call.
type Adapter struct {
	adapter.BaseSQLAdapter
	params Params
}

var _ adapter.Adapter = (*Adapter)(nil)

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	return &Adapter{
		BaseSQLAdapter: adapter.NewBase(SQLite, logger),
	}
}

// Connect opens the database file. Use ":memory:" (or an empty path) for an
// in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	if err := adapter.DecodeParams(cfg.Params, &a.params); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single connection keeps an in-memory database alive and serializes
	// writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	for _, pragma := range a.params.pragmas() {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// CreateInsertPrefix returns a complete single-row INSERT with numbered
// placeholders: INSERT INTO "t" ("a", "b") VALUES (?1, ?2).
func (a *Adapter) CreateInsertPrefix(table string, cols []core.ColumnDefinition) string {
	return a.SQL.BoundInsertSQL(table, cols)
}

// StoreData executes the prepared insert once per row inside a single
// transaction. A failing row is logged and skipped; SQLite rolls back only
// the failed statement.
func (a *Adapter) StoreData(ctx context.Context, cols []core.ColumnDefinition, rows []core.RawRow, insertPrefix string) (int, error) {
	if a.DB == nil {
		return 0, core.ErrNotConnected
	}

	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertPrefix)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	stored := 0
	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, a.Encoder.Binds(cols, row)...); err != nil {
			if ctx.Err() != nil {
				_ = tx.Rollback()
				return 0, ctx.Err()
			}
			a.Logger.Warn("failed to insert row", "row", i+1, "error", err)
			continue
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit rows: %w", err)
	}
	return stored, nil
}
