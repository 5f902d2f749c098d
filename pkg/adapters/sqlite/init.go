// Package sqlite provides a SQLite storage adapter for csvto.
//
// This file registers the SQLite adapter and dialect. Import this package
// with a blank identifier to register them:
//
//	import _ "github.com/leapstack-labs/csvto/pkg/adapters/sqlite"
package sqlite

import (
	"log/slog"

	"github.com/leapstack-labs/csvto/pkg/adapter"
	"github.com/leapstack-labs/csvto/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
	adapter.Register("sqlite", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
