// Package duckdb provides a DuckDB storage adapter for csvto.
//
// This file registers the DuckDB adapter and dialect.
// Import this package with a blank identifier to register them:
//
//	import _ "github.com/leapstack-labs/csvto/pkg/adapters/duckdb"
package duckdb

import (
	"log/slog"

	"github.com/leapstack-labs/csvto/pkg/adapter"
	"github.com/leapstack-labs/csvto/pkg/dialect"
)

func init() {
	dialect.Register(DuckDB)
	adapter.Register("duckdb", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
