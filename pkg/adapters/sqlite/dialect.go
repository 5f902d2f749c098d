package sqlite

import (
	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/dialect"
)

// SQLite is the SQLite dialect configuration. Identifiers keep their case.
var SQLite = dialect.NewDialect("sqlite").
	Identifiers(`"`, `"`, `""`, core.NormCaseSensitive).
	PlaceholderStyle(core.PlaceholderNumbered).
	DefaultSchema("main").
	Types("INTEGER", "DOUBLE", "TEXT").
	WithReservedWords(
		"abort", "action", "add", "after", "all", "alter", "analyze", "and",
		"as", "asc", "attach", "autoincrement", "before", "begin", "between",
		"by", "cascade", "case", "cast", "check", "collate", "column", "commit",
		"conflict", "constraint", "create", "cross", "current_date",
		"current_time", "current_timestamp", "database", "default", "delete",
		"desc", "distinct", "drop", "else", "end", "escape", "except",
		"exists", "explain", "from", "group", "having", "in", "index",
		"insert", "intersect", "into", "is", "join", "key", "left", "like",
		"limit", "not", "null", "of", "offset", "on", "or", "order", "primary",
		"references", "select", "set", "table", "then", "to", "transaction",
		"union", "unique", "update", "using", "values", "when", "where",
	).
	Build()
