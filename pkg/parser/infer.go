package parser

import (
	"strconv"

	"github.com/leapstack-labs/csvto/pkg/core"
)

// Classify returns the narrowest type a single cell parses as.
// Empty cells return core.Empty and never contribute a candidate.
func Classify(cell string) core.DataType {
	if cell == "" {
		return core.Empty
	}
	if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return core.Integer
	}
	if _, err := strconv.ParseFloat(cell, 64); err == nil {
		return core.Float
	}
	return core.String
}

// Infer feeds a row into the running per-column classifier.
// Cells beyond the known columns are ignored.
func Infer(cols []core.ColumnDefinition, row core.RawRow) {
	for i, cell := range row {
		if i >= len(cols) {
			return
		}
		cols[i].Observe(Classify(cell))
	}
}

// ResolveAll applies the final type resolution to every column.
func ResolveAll(cols []core.ColumnDefinition) {
	for i := range cols {
		cols[i].Resolve()
	}
}
