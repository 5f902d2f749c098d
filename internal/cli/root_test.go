package cli

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/csvto/internal/cli/commands"
	"github.com/leapstack-labs/csvto/internal/cli/config"
	clitest "github.com/leapstack-labs/csvto/internal/cli/testutil"
	"github.com/leapstack-labs/csvto/internal/testutil"
	"github.com/leapstack-labs/csvto/pkg/adapter"
	"github.com/leapstack-labs/csvto/pkg/core"
)

type jsonReport struct {
	Name    string           `json:"name"`
	Backend string           `json:"backend"`
	RunID   string           `json:"run_id"`
	Files   int              `json:"files"`
	Results []core.RunResult `json:"results"`
	Errors  []string         `json:"errors"`
	Summary string           `json:"summary"`
}

// isolate runs the test from an empty directory with no CSVTO_ variables
// leaking in from the environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"CSVTO_TYPE", "CSVTO_CONNECTION", "CSVTO_OUTPUT", "CSVTO_STATE_PATH"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	config.ResetConfig()
	return dir
}

func rowCount(t *testing.T, dbPath, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var n int
	require.NoError(t, db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM "%s"`, table)).Scan(&n))
	return n
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCmd()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"load", "inspect", "history", "version", "completion"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}

	for _, flag := range []string{"config", "verbose", "log-level", "output", "state", "no-history"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestLoad_SQLiteEndToEnd(t *testing.T) {
	dir := isolate(t)
	testutil.WriteFile(t, dir, "orders.csv", "id,amount,note\n1,2.5,first\n2,3,second\n")
	testutil.WriteFile(t, dir, "people.csv", "id,name\n1,Ann\n2\n3,Cy\n")
	dbPath := filepath.Join(dir, "out.db")

	out, _, err := clitest.Execute(NewRootCmd(),
		"load", "orders.csv", "people.csv",
		"--connection", dbPath,
		"--state", filepath.Join(dir, "state", "history.db"),
		"-o", "json")
	require.NoError(t, err)

	var rep jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "sqlite", rep.Backend)
	assert.Equal(t, 2, rep.Files)
	assert.NotEmpty(t, rep.RunID)
	require.Len(t, rep.Results, 2)
	assert.Equal(t, core.RunResult{Name: "Orders", Source: "orders.csv", RowsParsed: 2, RowsStored: 2}, rep.Results[0])
	assert.Equal(t, "People", rep.Results[1].Name)
	assert.Equal(t, 3, rep.Results[1].RowsParsed)
	assert.Equal(t, 2, rep.Results[1].RowsStored)
	require.Len(t, rep.Errors, 1)
	assert.Contains(t, rep.Errors[0], "people.csv -> parse error ->")

	assert.Equal(t, 2, rowCount(t, dbPath, "Orders"))
	assert.Equal(t, 2, rowCount(t, dbPath, "People"))

	// The run is visible in history.
	out, _, err = clitest.Execute(NewRootCmd(),
		"history", "--state", filepath.Join(dir, "state", "history.db"), "-o", "json")
	require.NoError(t, err)
	var runs []core.Run
	require.NoError(t, json.Unmarshal([]byte(out), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, rep.RunID, runs[0].ID)
	assert.Equal(t, core.RunStatusPartial, runs[0].Status)
}

func TestLoad_FailOnError(t *testing.T) {
	dir := isolate(t)
	testutil.WriteFile(t, dir, "bad.csv", "a,b\n1,2\n3\n")

	_, _, err := clitest.Execute(NewRootCmd(),
		"load", "bad.csv", "--connection", filepath.Join(dir, "out.db"),
		"--no-history", "--fail-on-error", "-o", "markdown")
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrRunHadErrors)
	assert.Equal(t, ExitRunError, ExitCode(err))

	out, _, err := clitest.Execute(NewRootCmd(),
		"load", "bad.csv", "--connection", filepath.Join(dir, "out.db"),
		"--no-history", "--drop", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Bad")
	clitest.AssertValidMarkdown(t, out)
	clitest.AssertNoANSI(t, out)
}

func TestLoad_UsageErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no input", args: []string{"load"}},
		{name: "bad concurrency", args: []string{"load", "x.csv", "--concurrency", "0"}},
		{name: "bad delimiter", args: []string{"load", "x.csv", "--delimiter", ";;"}},
		{name: "comment equals delimiter", args: []string{"load", "x.csv", "--delimiter", ";", "--comment", ";"}},
		{name: "bad output", args: []string{"load", "x.csv", "-o", "yaml"}},
		{name: "watch without dir", args: []string{"load", "x.csv", "--watch"}},
		{name: "unknown flag", args: []string{"load", "--bogus"}},
		{name: "unknown type", args: []string{"load", "x.csv", "--type", "oracle", "--no-history"}},
		{name: "history extra args", args: []string{"history", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := clitest.Execute(NewRootCmd(), tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitUsage, ExitCode(err), "error: %v", err)
		})
	}
}

func TestInspect(t *testing.T) {
	dir := isolate(t)
	testutil.WriteFile(t, dir, "data/customers.csv", "id,score,name\n1,1.5,Ann\n2,2,Bo\n")

	out, _, err := clitest.Execute(NewRootCmd(),
		"inspect", "--dir", "data", "--type", "postgres", "-o", "json")
	require.NoError(t, err)

	var schemas []struct {
		Table   string `json:"table"`
		Rows    int    `json:"rows"`
		DDL     string `json:"ddl"`
		Columns []struct {
			Name    string `json:"name"`
			Type    string `json:"type"`
			SQLType string `json:"sql_type"`
		} `json:"columns"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &schemas))
	require.Len(t, schemas, 1)
	assert.Equal(t, "Customers", schemas[0].Table)
	assert.Equal(t, 2, schemas[0].Rows)
	require.Len(t, schemas[0].Columns, 3)
	assert.Equal(t, "integer", schemas[0].Columns[0].Type)
	assert.Equal(t, "float", schemas[0].Columns[1].Type)
	assert.Equal(t, "string", schemas[0].Columns[2].Type)
	assert.Contains(t, schemas[0].DDL, `CREATE TABLE`)
	assert.Contains(t, schemas[0].DDL, `"customers"`)

	// No database was created.
	assert.NoFileExists(t, filepath.Join(dir, "csvto.db"))
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, _, err := clitest.Execute(NewRootCmd(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "csvto v"+Version)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "fail on error", err: commands.ErrRunHadErrors, want: ExitRunError},
		{name: "usage", err: core.NewUsageError("bad"), want: ExitUsage},
		{name: "wrapped usage", err: fmt.Errorf("x: %w", core.NewUsageError("bad")), want: ExitUsage},
		{name: "unknown adapter", err: &adapter.UnknownAdapterError{Type: "oracle"}, want: ExitUsage},
		{name: "connection", err: fmt.Errorf("failed to connect to database: %w", errors.New("refused")), want: ExitIO},
		{name: "io", err: &core.IOError{Path: "x.csv", Err: errors.New("denied")}, want: ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
