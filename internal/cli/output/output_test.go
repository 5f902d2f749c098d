package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/csvto/internal/engine"
	"github.com/leapstack-labs/csvto/pkg/core"
)

func sampleReport() *engine.Report {
	return &engine.Report{
		Name:  "demo",
		Files: 2,
		Results: []core.RunResult{
			{Name: "Orders", Source: "orders.csv", RowsParsed: 3, RowsStored: 3},
			{Name: "Items", Source: "items.csv", RowsParsed: 4, RowsStored: 2},
		},
		Errors:   []string{"items.csv -> parse error -> bad row"},
		Duration: 1500 * time.Millisecond,
	}
}

func TestEffectiveMode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, ModeMarkdown, NewRenderer(&buf, &buf, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeMarkdown, NewRenderer(&buf, &buf, "bogus").EffectiveMode())
	assert.Equal(t, ModeText, NewRenderer(&buf, &buf, ModeText).EffectiveMode())
	assert.Equal(t, ModeJSON, NewRenderer(&buf, &buf, ModeJSON).EffectiveMode())
}

func TestRenderReport_Text(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	require.NoError(t, r.RenderReport(sampleReport()))

	want := "\ncsvto results\n" +
		"-------------------\n" +
		"2 files processed / 1 Errors\n" +
		"✅ Orders: 3 records loaded\n" +
		"❌ Items: had 2 errors\n" +
		"\nError Details\n-------------\n" +
		"items.csv -> parse error -> bad row\n"
	assert.Equal(t, want, out.String())
	assert.Empty(t, errOut.String())
}

func TestRenderReport_Markdown(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &out, ModeMarkdown)

	require.NoError(t, r.RenderReport(sampleReport()))

	s := out.String()
	assert.Contains(t, s, "# csvto results")
	assert.Contains(t, s, "| Items | items.csv | 4 | 2 | mismatch |")
	assert.Contains(t, s, "## Error Details")
	assert.Contains(t, s, "- items.csv -> parse error -> bad row")
}

func TestRenderReport_JSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &out, ModeJSON)

	require.NoError(t, r.RenderReport(sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "2 files processed / 1 Errors", decoded["summary"])
	assert.Equal(t, "1.5s", decoded["duration"])
	assert.Len(t, decoded["results"], 2)
}

func TestRenderSchemas(t *testing.T) {
	schemas := []SchemaInfo{{
		File:  "people.csv",
		Table: "People",
		Rows:  2,
		Columns: []ColumnInfo{
			{Name: "name", Type: "string", SQLType: "TEXT"},
			{Name: "age", Type: "integer", SQLType: "INTEGER"},
		},
		Reserved: []string{"order"},
		DDL:      `CREATE TABLE "People" ("name" TEXT, "age" INTEGER);`,
	}}

	var out bytes.Buffer
	require.NoError(t, NewRenderer(&out, &out, ModeText).RenderSchemas(schemas))
	assert.Contains(t, out.String(), "People (people.csv, 2 rows)")
	assert.Contains(t, out.String(), "INTEGER")
	assert.Contains(t, out.String(), "reserved words used as column names: order")

	out.Reset()
	require.NoError(t, NewRenderer(&out, &out, ModeMarkdown).RenderSchemas(schemas))
	assert.Contains(t, out.String(), "| age | integer | INTEGER |")
	assert.Contains(t, out.String(), "```sql\nCREATE TABLE")
	assert.Contains(t, out.String(), "Reserved words")
}

func TestRenderRuns(t *testing.T) {
	runs := []*core.Run{{
		ID: "r1", Name: "demo", Backend: "sqlite", Status: core.RunStatusCompleted,
		Files: 2, StartedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}}

	var out bytes.Buffer
	require.NoError(t, NewRenderer(&out, &out, ModeText).RenderRuns(runs))
	assert.Contains(t, out.String(), "completed")

	out.Reset()
	require.NoError(t, NewRenderer(&out, &out, ModeText).RenderRuns(nil))
	assert.Contains(t, out.String(), "No runs recorded")

	out.Reset()
	require.NoError(t, NewRenderer(&out, &out, ModeJSON).RenderRuns(nil))
	assert.Equal(t, "[]\n", out.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Title", FormatHeader(2, "Title"))
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "- **Key**: v", FormatKeyValue("Key", "v"))
	assert.Equal(t, "```sql\nSELECT 1\n```", FormatCodeBlock("sql", "SELECT 1\n"))
	assert.Equal(t, "| a |\n| --- |\n| x\\|y |", FormatTable([]string{"a"}, [][]string{{"x|y"}}))
}
