// Package dialect provides SQL dialect configuration and the DDL/DML text
// generation used by the storage adapters.
//
// A Dialect knows how a backend quotes identifiers, which type keyword it
// uses for each inferred core.DataType, how it formats bound parameters and
// how string literals are escaped. Concrete dialects are registered from the
// pkg/adapters/* packages.
package dialect

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/csvto/pkg/core"
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig
	Literals    core.LiteralConfig

	// Database-specific settings
	DefaultSchema string                // Default schema name ("main" for DuckDB, "public" for Postgres)
	Placeholder   core.PlaceholderStyle // How to format query parameters

	types         map[core.DataType]string
	reservedWords map[string]struct{}
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return strings.ToUpper(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// TypeName returns the column type keyword for an inferred type.
// Unresolved (Empty) columns use the String keyword.
func (d *Dialect) TypeName(t core.DataType) string {
	if t == core.Empty {
		t = core.String
	}
	if name, ok := d.types[t]; ok {
		return name
	}
	return "TEXT"
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case core.PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case core.PlaceholderNumbered:
		return "?" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// IsReservedWord returns true if the word is a reserved keyword.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToLower(word)]
	return ok
}

// ReservedColumns returns the names of cols that are reserved words in this
// dialect. Generated SQL always quotes them, but other tools may not.
func (d *Dialect) ReservedColumns(cols []core.ColumnDefinition) []string {
	var out []string
	for _, c := range cols {
		if d.IsReservedWord(d.NormalizeName(c.Name)) {
			out = append(out, c.Name)
		}
	}
	return out
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// Ident normalizes and quotes a table or column name.
func (d *Dialect) Ident(name string) string {
	return d.QuoteIdentifier(d.NormalizeName(name))
}

// QuoteString renders s as a single-quoted SQL string literal.
// Embedded single quotes are doubled; backslashes are doubled as well when
// the dialect treats them as escapes.
func (d *Dialect) QuoteString(s string) string {
	if d.Literals.BackslashEscapes {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name.
// Defaults are ANSI double-quoted, lower-cased identifiers, ? placeholders
// and INTEGER/DOUBLE/TEXT type keywords.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: core.NormLowercase,
			},
			types: map[core.DataType]string{
				core.Integer: "INTEGER",
				core.Float:   "DOUBLE",
				core.String:  "TEXT",
			},
			reservedWords: make(map[string]struct{}),
		},
	}
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// Types sets the column type keywords for Integer, Float and String columns.
func (b *Builder) Types(integer, float, text string) *Builder {
	b.dialect.types[core.Integer] = integer
	b.dialect.types[core.Float] = float
	b.dialect.types[core.String] = text
	return b
}

// BackslashEscapes marks backslash as an escape character in string literals.
func (b *Builder) BackslashEscapes() *Builder {
	b.dialect.Literals.BackslashEscapes = true
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.dialect.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style core.PlaceholderStyle) *Builder {
	b.dialect.Placeholder = style
	return b
}

// WithReservedWords registers reserved keywords.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToLower(w)] = struct{}{}
	}
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
