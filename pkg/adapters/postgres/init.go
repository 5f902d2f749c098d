// Package postgres provides a PostgreSQL storage adapter for csvto.
//
// This file registers the PostgreSQL adapter and dialect.
// Import this package with a blank identifier to register them:
//
//	import _ "github.com/leapstack-labs/csvto/pkg/adapters/postgres"
package postgres

import (
	"log/slog"

	"github.com/leapstack-labs/csvto/pkg/adapter"
	"github.com/leapstack-labs/csvto/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
	adapter.Register("postgres", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
