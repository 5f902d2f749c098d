package core

// NormalizationStrategy defines how identifiers are normalized before quoting.
type NormalizationStrategy int

const (
	// NormLowercase lower-cases identifiers (Postgres, MySQL).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase upper-cases identifiers.
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly (SQLite).
	NormCaseSensitive
	// NormCaseInsensitive lower-cases for comparison (DuckDB).
	NormCaseInsensitive
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (DuckDB, MySQL).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
	// PlaceholderNumbered uses ?1, ?2, etc. for parameters (SQLite).
	PlaceholderNumbered
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: " or `
	QuoteEnd      string                // End quote character (usually same as Quote)
	Escape        string                // Escape sequence for QuoteEnd inside a name: "" or ``
	Normalization NormalizationStrategy // How to normalize identifiers
}

// LiteralConfig defines how string literals are embedded in SQL text.
type LiteralConfig struct {
	// BackslashEscapes means a backslash is an escape character inside
	// string literals and must itself be escaped (MySQL).
	BackslashEscapes bool
}
