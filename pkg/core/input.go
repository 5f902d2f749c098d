package core

import "path/filepath"

// InputSource describes a discovered file. It is immutable once discovered.
type InputSource struct {
	Location   string `json:"location"`
	HasHeaders bool   `json:"has_headers"`
	SizeBytes  int64  `json:"size_bytes"`
}

// BaseName returns the file name of the source without its directory.
func (s InputSource) BaseName() string {
	return filepath.Base(s.Location)
}

// RawRow is one decoded CSV record, cells in column order.
type RawRow []string

// ParsedContent is the output of parsing a single input.
//
// Every row in Rows has exactly len(Columns) cells. RowsScanned counts
// every attempted row, malformed ones included, so it can be reconciled
// against the number of rows stored.
type ParsedContent struct {
	Columns     []ColumnDefinition
	Rows        []RawRow
	FileName    string
	RowsScanned int
	Errors      []string
}
