// Package adapter provides the storage adapter contract used by the load
// engine, a shared database/sql implementation and the backend registry.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves from init().
package adapter

import (
	"context"

	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/dialect"
)

// Config is an alias for core.AdapterConfig.
type Config = core.AdapterConfig

// Adapter defines the interface that all storage adapters must implement.
//
// An adapter owns one connection pool for the duration of a run. All
// methods other than Connect return core.ErrNotConnected when called
// before a successful Connect.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Dialect returns the SQL dialect used to render statements.
	Dialect() *dialect.Dialect

	// CreateInsertPrefix returns the insert template for a table. Bound
	// adapters return a complete single-row INSERT with placeholders;
	// literal adapters return the head up to and including "VALUES ".
	CreateInsertPrefix(table string, cols []core.ColumnDefinition) string

	// CreateStore creates the table, dropping an existing one first when
	// dropIfExists is set. DDL failures are returned as *core.SchemaError.
	CreateStore(ctx context.Context, table string, cols []core.ColumnDefinition, dropIfExists bool) error

	// DeleteData removes every row of the table and keeps its schema.
	DeleteData(ctx context.Context, table string) error

	// StoreData inserts rows one statement at a time and returns how many
	// succeeded. A failing row is logged and skipped.
	StoreData(ctx context.Context, cols []core.ColumnDefinition, rows []core.RawRow, insertPrefix string) (int, error)
}
