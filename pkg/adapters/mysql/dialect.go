package mysql

import (
	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/dialect"
)

// MySQL is the MySQL dialect configuration. Identifiers are backtick
// quoted and lower-cased; backslash is an escape inside string literals.
var MySQL = dialect.NewDialect("mysql").
	Identifiers("`", "`", "``", core.NormLowercase).
	PlaceholderStyle(core.PlaceholderQuestion).
	Types("BIGINT", "DOUBLE", "TEXT").
	BackslashEscapes().
	WithReservedWords(
		"add", "all", "alter", "and", "as", "asc", "between", "by", "case",
		"change", "check", "column", "constraint", "create", "cross",
		"database", "default", "delete", "desc", "distinct", "drop", "else",
		"exists", "from", "group", "having", "in", "index", "inner", "insert",
		"interval", "into", "is", "join", "key", "keys", "left", "like",
		"limit", "load", "lock", "not", "null", "on", "or", "order", "primary",
		"references", "rename", "right", "select", "set", "show", "table",
		"then", "to", "union", "unique", "update", "usage", "using", "values",
		"when", "where", "with",
	).
	Build()
