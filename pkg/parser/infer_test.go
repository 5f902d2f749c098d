package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/csvto/pkg/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		cell string
		want core.DataType
	}{
		{"", core.Empty},
		{"42", core.Integer},
		{"-7", core.Integer},
		{"3.14", core.Float},
		{"1e10", core.Float},
		{"9223372036854775808", core.Float},
		{"abc", core.String},
		{"12abc", core.String},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.cell))
		})
	}
}

func inferColumn(cells ...string) core.DataType {
	cols := []core.ColumnDefinition{core.NewColumnDefinition("c")}
	for _, c := range cells {
		Infer(cols, core.RawRow{c})
	}
	ResolveAll(cols)
	return cols[0].DataType
}

func TestInfer_Widening(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  core.DataType
	}{
		{name: "all integers", cells: []string{"1", "2", "3"}, want: core.Integer},
		{name: "integer then float", cells: []string{"1", "2.5"}, want: core.Float},
		{name: "float then string", cells: []string{"2.5", "x"}, want: core.String},
		{name: "empty cells ignored", cells: []string{"", "7", ""}, want: core.Integer},
		{name: "all empty is string", cells: []string{"", ""}, want: core.String},
		{name: "no rows is string", cells: nil, want: core.String},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferColumn(tt.cells...))
		})
	}
}

func TestInfer_OrderIndependent(t *testing.T) {
	orders := [][]string{
		{"1", "2.5", "x"},
		{"x", "1", "2.5"},
		{"2.5", "x", "1"},
	}
	for _, cells := range orders {
		assert.Equal(t, core.String, inferColumn(cells...))
	}

	assert.Equal(t, inferColumn("1", "2.5"), inferColumn("2.5", "1"))
}

func TestInfer_IgnoresExtraCells(t *testing.T) {
	cols := []core.ColumnDefinition{core.NewColumnDefinition("a")}
	Infer(cols, core.RawRow{"1", "oops"})
	ResolveAll(cols)
	require.Len(t, cols, 1)
	assert.Equal(t, core.Integer, cols[0].DataType)
}

func TestResolve_Idempotent(t *testing.T) {
	col := core.NewColumnDefinition("a")
	col.Observe(core.Float)
	assert.Equal(t, core.Float, col.Resolve())

	col.Observe(core.String)
	assert.Equal(t, core.Float, col.Resolve())
	assert.True(t, col.Resolved())
	assert.Empty(t, col.Candidates)
}
