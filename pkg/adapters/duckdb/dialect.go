package duckdb

import (
	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/dialect"
)

// DuckDB is the DuckDB dialect configuration.
var DuckDB = dialect.NewDialect("duckdb").
	Identifiers(`"`, `"`, `""`, core.NormCaseInsensitive).
	DefaultSchema("main").
	PlaceholderStyle(core.PlaceholderQuestion).
	Types("BIGINT", "DOUBLE", "TEXT").
	WithReservedWords(
		"all", "analyse", "analyze", "and", "any", "array", "as", "asc",
		"both", "case", "cast", "check", "collate", "column", "constraint",
		"create", "default", "desc", "distinct", "do", "else", "end", "except",
		"false", "fetch", "for", "foreign", "from", "group", "having", "in",
		"initially", "intersect", "into", "lateral", "leading", "limit",
		"not", "null", "offset", "on", "only", "or", "order", "pivot",
		"primary", "qualify", "references", "returning", "select", "some",
		"summarize", "table", "then", "to", "trailing", "true", "union",
		"unique", "unpivot", "using", "when", "where", "window", "with",
	).
	Build()
