package commands

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/csvto/internal/cli/config"
	clitest "github.com/leapstack-labs/csvto/internal/cli/testutil"
	"github.com/leapstack-labs/csvto/internal/state"
	"github.com/leapstack-labs/csvto/pkg/adapters/postgres"
	"github.com/leapstack-labs/csvto/pkg/adapters/sqlite"
	"github.com/leapstack-labs/csvto/pkg/core"
)

func TestNewLoadCommand(t *testing.T) {
	cmd := NewLoadCommand()

	assert.Equal(t, "load [files...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{
		"dir", "extension", "type", "connection", "name", "drop", "no-headers",
		"one-table", "delete-data", "concurrency", "delimiter", "comment",
		"encoding", "lazy-quotes", "trim-leading-space", "watch", "fail-on-error",
	}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}

	assert.Equal(t, "d", cmd.Flags().Lookup("dir").Shorthand)
	assert.Equal(t, "csv", cmd.Flags().Lookup("extension").DefValue)
}

func TestNewInspectCommand(t *testing.T) {
	cmd := NewInspectCommand()

	assert.Equal(t, "inspect [files...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	for _, flag := range []string{"dir", "extension", "type", "no-headers", "delimiter", "ddl"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	// Storage-only flags belong to load.
	assert.Nil(t, cmd.Flags().Lookup("drop"))
	assert.Nil(t, cmd.Flags().Lookup("connection"))
}

func TestNewHistoryCommand(t *testing.T) {
	cmd := NewHistoryCommand()

	assert.Equal(t, "history [run-id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("limit"))
}

func TestUsageArgs(t *testing.T) {
	validate := usageArgs(cobra.MaximumNArgs(1))

	require.NoError(t, validate(&cobra.Command{}, []string{"a"}))

	err := validate(&cobra.Command{}, []string{"a", "b"})
	var usageErr *core.UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestEnsureStateDir(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, ensureStateDir(""))
	require.NoError(t, ensureStateDir(":memory:"))
	require.NoError(t, ensureStateDir(filepath.Join(dir, "nested", "history.db")))
	assert.DirExists(t, filepath.Join(dir, "nested"))
}

func TestSchemaInfo(t *testing.T) {
	cols := []core.ColumnDefinition{
		{Name: "id", DataType: core.Integer},
		{Name: "price", DataType: core.Float},
		{Name: "name", DataType: core.String},
		{Name: "User", DataType: core.String},
	}
	content := &core.ParsedContent{
		Columns: cols,
		Rows:    []core.RawRow{{"1", "2.5", "a", "u"}, {"2", "3", "b", "v"}},
		Errors:  []string{"orders.csv -> parse error -> bad"},
	}
	input := core.InputSource{Location: "data/orders.csv.gz"}

	info := schemaInfo(postgres.Postgres, input, content, true)

	assert.Equal(t, "Orders", info.Table)
	assert.Equal(t, 2, info.Rows)
	require.Len(t, info.Columns, 4)
	assert.Equal(t, "integer", info.Columns[0].Type)
	assert.Equal(t, postgres.Postgres.TypeName(core.Float), info.Columns[1].SQLType)
	assert.Equal(t, postgres.Postgres.CreateTableSQL("Orders", cols), info.DDL)
	assert.Len(t, info.Errors, 1)
	assert.Equal(t, []string{"User"}, info.Reserved)

	noDDL := schemaInfo(sqlite.SQLite, input, content, false)
	assert.Empty(t, noDDL.DDL)
}

func historyCommand(cfg *config.Config) *cobra.Command {
	cmd := NewHistoryCommand()
	cmd.SetContext(context.WithValue(context.Background(), config.ConfigKey(), cfg))
	return cmd
}

func TestHistory_NoDatabase(t *testing.T) {
	cfg := &config.Config{
		StatePath:    filepath.Join(t.TempDir(), "missing.db"),
		OutputFormat: "json",
	}

	out, _, err := clitest.Execute(historyCommand(cfg))
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	_, _, err = clitest.Execute(historyCommand(cfg), "some-id")
	var usageErr *core.UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestHistory_ListAndDetail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store := state.NewSQLiteStore(nil)
	require.NoError(t, store.Open(path))

	ctx := context.Background()
	run, err := store.CreateRun(ctx, "shop", "sqlite")
	require.NoError(t, err)
	require.NoError(t, store.RecordFileRun(ctx, core.FileRun{
		RunID: run.ID, Table: "Orders", Source: "orders.csv", RowsParsed: 3, RowsStored: 3,
	}))
	require.NoError(t, store.CompleteRun(ctx, run.ID, core.RunStatusCompleted, 1, 0))
	require.NoError(t, store.Close())

	cfg := &config.Config{StatePath: path, OutputFormat: "markdown"}

	out, _, err := clitest.Execute(historyCommand(cfg))
	require.NoError(t, err)
	assert.Contains(t, out, run.ID)
	assert.Contains(t, out, "completed")
	clitest.AssertValidMarkdown(t, out)

	out, _, err = clitest.Execute(historyCommand(cfg), run.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "| Orders | orders.csv | 3 | 3 |")

	_, _, err = clitest.Execute(historyCommand(cfg), "nope")
	var usageErr *core.UsageError
	assert.True(t, errors.As(err, &usageErr))
	assert.ErrorContains(t, err, "run not found")

	_, _, err = clitest.Execute(historyCommand(cfg), "--limit", "0")
	assert.True(t, errors.As(err, &usageErr))
}
