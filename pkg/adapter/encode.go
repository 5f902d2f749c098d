package adapter

import (
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/dialect"
)

// Encoder converts raw cells into SQL values according to the column's
// resolved type. Numeric cells that do not parse (empty ones included)
// are replaced by a zero sentinel instead of failing the row.
type Encoder struct {
	SQL           *dialect.Dialect
	IntSentinel   int64
	FloatSentinel float64

	coerced atomic.Int64
}

// NewEncoder creates an Encoder with zero sentinels.
func NewEncoder(d *dialect.Dialect) *Encoder {
	return &Encoder{SQL: d}
}

// Coerced returns how many non-empty cells were replaced by a sentinel.
func (e *Encoder) Coerced() int64 {
	return e.coerced.Load()
}

// Literal renders a cell as an SQL literal.
func (e *Encoder) Literal(t core.DataType, cell string) string {
	switch t {
	case core.Integer:
		return strconv.FormatInt(e.integer(cell), 10)
	case core.Float:
		return strconv.FormatFloat(e.float(cell), 'g', -1, 64)
	default:
		return e.SQL.QuoteString(cell)
	}
}

// Literals renders a whole row as a value tuple: ('a', 1, 2.5).
func (e *Encoder) Literals(cols []core.ColumnDefinition, row core.RawRow) string {
	values := make([]string, len(cols))
	for i, col := range cols {
		values[i] = e.Literal(col.DataType, cell(row, i))
	}
	return e.SQL.Tuple(values)
}

// Bind converts a cell into a driver argument.
func (e *Encoder) Bind(t core.DataType, cell string) any {
	switch t {
	case core.Integer:
		return e.integer(cell)
	case core.Float:
		return e.float(cell)
	default:
		return cell
	}
}

// Binds converts a whole row into driver arguments in column order.
func (e *Encoder) Binds(cols []core.ColumnDefinition, row core.RawRow) []any {
	args := make([]any, len(cols))
	for i, col := range cols {
		args[i] = e.Bind(col.DataType, cell(row, i))
	}
	return args
}

func (e *Encoder) integer(cell string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
	if err != nil {
		e.noteCoercion(cell)
		return e.IntSentinel
	}
	return v
}

func (e *Encoder) float(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		e.noteCoercion(cell)
		return e.FloatSentinel
	}
	return v
}

func (e *Encoder) noteCoercion(cell string) {
	if cell != "" {
		e.coerced.Add(1)
	}
}

func cell(row core.RawRow, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
