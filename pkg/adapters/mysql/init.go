// Package mysql provides a MySQL storage adapter for csvto.
//
// This file registers the MySQL adapter and dialect.
// Import this package with a blank identifier to register them:
//
//	import _ "github.com/leapstack-labs/csvto/pkg/adapters/mysql"
package mysql

import (
	"log/slog"

	"github.com/leapstack-labs/csvto/pkg/adapter"
	"github.com/leapstack-labs/csvto/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
	adapter.Register("mysql", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
