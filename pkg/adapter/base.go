package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/dialect"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Exec, CreateStore, DeleteData and literal-mode StoreData.
type BaseSQLAdapter struct {
	DB      *sql.DB
	Cfg     core.AdapterConfig
	Logger  *slog.Logger
	Encoder *Encoder
	SQL     *dialect.Dialect
}

// NewBase returns a BaseSQLAdapter for the dialect. If logger is nil, a
// discard logger is used.
func NewBase(d *dialect.Dialect, logger *slog.Logger) BaseSQLAdapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return BaseSQLAdapter{
		Logger:  logger,
		Encoder: NewEncoder(d),
		SQL:     d,
	}
}

// Dialect returns the dialect used to render statements.
func (b *BaseSQLAdapter) Dialect() *dialect.Dialect {
	return b.SQL
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string) error {
	if b.DB == nil {
		return core.ErrNotConnected
	}
	_, err := b.DB.ExecContext(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// CreateInsertPrefix returns the literal-mode INSERT head.
func (b *BaseSQLAdapter) CreateInsertPrefix(table string, cols []core.ColumnDefinition) string {
	return b.SQL.InsertPrefix(table, cols)
}

// CreateStore creates the table for the columns. The optional drop is best
// effort: its failure is logged and creation is still attempted.
func (b *BaseSQLAdapter) CreateStore(ctx context.Context, table string, cols []core.ColumnDefinition, dropIfExists bool) error {
	if err := validateStore(table, cols); err != nil {
		return err
	}
	if b.DB == nil {
		return core.ErrNotConnected
	}

	if dropIfExists {
		if err := b.Exec(ctx, b.SQL.DropTableSQL(table)); err != nil {
			b.Logger.Warn("failed to drop table", "table", table, "error", err)
		}
	}

	ddl := b.SQL.CreateTableSQL(table, cols)
	b.Logger.Debug("creating table", "table", table, "sql", ddl)
	if err := b.Exec(ctx, ddl); err != nil {
		return &core.SchemaError{Table: table, Err: err}
	}
	return nil
}

// DeleteData removes every row from the table.
func (b *BaseSQLAdapter) DeleteData(ctx context.Context, table string) error {
	if table == "" {
		return &core.ValidationError{Field: "table", Msg: "name is empty"}
	}
	if err := b.Exec(ctx, b.SQL.DeleteSQL(table)); err != nil {
		return fmt.Errorf("failed to delete data from %s: %w", table, err)
	}
	return nil
}

// StoreData completes the literal prefix with one value tuple per row and
// executes each row on its own.
func (b *BaseSQLAdapter) StoreData(ctx context.Context, cols []core.ColumnDefinition, rows []core.RawRow, insertPrefix string) (int, error) {
	if b.DB == nil {
		return 0, core.ErrNotConnected
	}

	stored := 0
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return stored, err
		}

		stmt := insertPrefix + b.Encoder.Literals(cols, row)
		if _, err := b.DB.ExecContext(ctx, stmt); err != nil {
			b.Logger.Warn("failed to insert row", "row", i+1, "error", err)
			continue
		}
		stored++
	}
	return stored, nil
}

func validateStore(table string, cols []core.ColumnDefinition) error {
	if table == "" {
		return &core.ValidationError{Field: "table", Msg: "name is empty"}
	}
	if len(cols) == 0 {
		return &core.ValidationError{Field: "columns", Msg: "at least one column is required"}
	}
	return nil
}
