package core

import "slices"

// DataType classifies the values observed in a column.
type DataType int

const (
	// Empty means no non-empty cell has been observed yet.
	// A resolved column is never Empty.
	Empty DataType = iota
	// Integer means every observed value parsed as a signed 64-bit integer.
	Integer
	// Float means every observed value parsed as a 64-bit float.
	Float
	// String is the widest type and the fail-safe default.
	String
)

// String returns the string representation of the DataType.
func (t DataType) String() string {
	switch t {
	case Empty:
		return "empty"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// rank orders types for widening: String > Float > Integer > Empty.
func (t DataType) rank() int {
	switch t {
	case Integer:
		return 1
	case Float:
		return 2
	case String:
		return 3
	default:
		return 0
	}
}

// Wider returns the wider of two types.
func Wider(a, b DataType) DataType {
	if b.rank() > a.rank() {
		return b
	}
	return a
}

// ColumnDefinition is the inferred schema entry for one CSV column.
//
// Candidates holds the distinct classifications observed while scanning.
// It is owned by the column and only mutated through Observe and Resolve.
type ColumnDefinition struct {
	Name       string     `json:"name"`
	DataType   DataType   `json:"data_type"`
	Candidates []DataType `json:"-"`

	resolved bool
}

// NewColumnDefinition creates an unresolved column with the given name.
func NewColumnDefinition(name string) ColumnDefinition {
	return ColumnDefinition{Name: name, DataType: Empty}
}

// Observe records a candidate type for the column.
// Empty candidates are ignored, as are observations after Resolve.
func (c *ColumnDefinition) Observe(t DataType) {
	if c.resolved || t == Empty {
		return
	}
	if !slices.Contains(c.Candidates, t) {
		c.Candidates = append(c.Candidates, t)
	}
}

// Resolve collapses the observed candidates into the final DataType.
// Precedence is String, then Float, then Integer; a column without any
// candidate resolves to String. Resolve is idempotent.
func (c *ColumnDefinition) Resolve() DataType {
	if c.resolved {
		return c.DataType
	}

	resolved := Empty
	for _, t := range c.Candidates {
		resolved = Wider(resolved, t)
	}
	if resolved == Empty {
		resolved = String
	}

	c.DataType = resolved
	c.Candidates = nil
	c.resolved = true
	return resolved
}

// Resolved reports whether Resolve has been applied.
func (c *ColumnDefinition) Resolved() bool {
	return c.resolved
}

// ColumnNames returns the names of the given columns in order.
func ColumnNames(cols []ColumnDefinition) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
