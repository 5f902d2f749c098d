package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvto/internal/cli/output"
	intconfig "github.com/leapstack-labs/csvto/internal/config"
	"github.com/leapstack-labs/csvto/internal/engine"
	"github.com/leapstack-labs/csvto/pkg/adapter"
	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/dialect"
	"github.com/leapstack-labs/csvto/pkg/parser"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [files...]",
		Short: "Show the schema inferred for CSV files",
		Long: `Parse CSV files without storing them and show the table name, the
inferred column types and the CREATE TABLE statement that load would run.

Use --type to see the column types of a specific backend.`,
		Example: `  csvto inspect customers.csv
  csvto inspect -d ./data -t postgres -o json`,
		Args: usageArgs(cobra.ArbitraryArgs),
		RunE: runInspect,
	}

	addInputFlags(cmd)
	cmd.Flags().Bool("ddl", true, "Include the CREATE TABLE statement")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg
	cfg.Files = append(cfg.Files, args...)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Discover(cc.Logger); err != nil {
		return err
	}

	typ := cfg.Type
	if typ == "" {
		typ = intconfig.DefaultType
	}
	d, ok := dialect.Get(typ)
	if !ok {
		return &adapter.UnknownAdapterError{Type: typ, Available: dialect.List()}
	}

	withDDL, _ := cmd.Flags().GetBool("ddl")
	p := parser.New(cfg.ParserOptions(), cc.Logger)

	var schemas []output.SchemaInfo
	for _, input := range cfg.InputSources() {
		content, err := p.Parse(cmd.Context(), input)
		if err != nil {
			cc.Renderer.Error(err.Error())
			continue
		}
		schemas = append(schemas, schemaInfo(d, input, content, withDDL))
	}

	return cc.Renderer.RenderSchemas(schemas)
}

func schemaInfo(d *dialect.Dialect, input core.InputSource, content *core.ParsedContent, withDDL bool) output.SchemaInfo {
	table := engine.TableName(input)
	info := output.SchemaInfo{
		File:   input.Location,
		Table:  table,
		Rows:   len(content.Rows),
		Errors: content.Errors,
	}
	for _, c := range content.Columns {
		info.Columns = append(info.Columns, output.ColumnInfo{
			Name:    c.Name,
			Type:    c.DataType.String(),
			SQLType: d.TypeName(c.DataType),
		})
	}
	info.Reserved = d.ReservedColumns(content.Columns)
	if withDDL {
		info.DDL = d.CreateTableSQL(table, content.Columns)
	}
	return info
}
