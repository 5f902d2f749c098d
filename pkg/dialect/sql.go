package dialect

import (
	"strings"

	"github.com/leapstack-labs/csvto/pkg/core"
)

// CreateTableSQL renders the CREATE TABLE statement for the columns.
//
//	CREATE TABLE "t" ("a" TEXT, "b" INTEGER);
func (d *Dialect) CreateTableSQL(table string, cols []core.ColumnDefinition) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(d.Ident(table))
	b.WriteString(" (")
	for i, col := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.Ident(col.Name))
		b.WriteByte(' ')
		b.WriteString(d.TypeName(col.DataType))
	}
	b.WriteString(");")
	return b.String()
}

// DropTableSQL renders a DROP TABLE IF EXISTS statement.
func (d *Dialect) DropTableSQL(table string) string {
	return "DROP TABLE IF EXISTS " + d.Ident(table) + ";"
}

// DeleteSQL renders a statement removing every row but keeping the schema.
func (d *Dialect) DeleteSQL(table string) string {
	return "DELETE FROM " + d.Ident(table) + ";"
}

// InsertPrefix renders the INSERT head shared by every row of a table:
//
//	INSERT INTO "t" ("a", "b") VALUES
//
// The caller appends one parenthesised tuple per row.
func (d *Dialect) InsertPrefix(table string, cols []core.ColumnDefinition) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(d.Ident(table))
	b.WriteString(" (")
	for i, col := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d.Ident(col.Name))
	}
	b.WriteString(") VALUES ")
	return b.String()
}

// BoundInsertSQL renders a single-row INSERT using the dialect's bound
// parameter placeholders.
func (d *Dialect) BoundInsertSQL(table string, cols []core.ColumnDefinition) string {
	return d.InsertPrefix(table, cols) + d.Tuple(d.placeholders(len(cols)))
}

// Tuple joins already-rendered values into "(v1, v2)".
func (d *Dialect) Tuple(values []string) string {
	return "(" + strings.Join(values, ", ") + ")"
}

func (d *Dialect) placeholders(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = d.FormatPlaceholder(i + 1)
	}
	return out
}
