package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/csvto/internal/engine"
	"github.com/leapstack-labs/csvto/pkg/core"
)

// ReportOutput is the JSON form of a run report.
type ReportOutput struct {
	*engine.Report
	Summary  string `json:"summary"`
	Duration string `json:"duration"`
}

// RenderReport writes a run report in the renderer's mode.
func (r *Renderer) RenderReport(rep *engine.Report) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(ReportOutput{
			Report:   rep,
			Summary:  rep.Summary(),
			Duration: rep.Duration.Round(time.Millisecond).String(),
		})
	case ModeMarkdown:
		r.renderReportMarkdown(rep)
	default:
		return r.renderReportText(rep)
	}
	return nil
}

// renderReportText writes the plain report when out is not a terminal and
// a coloured version of the same lines otherwise.
func (r *Renderer) renderReportText(rep *engine.Report) error {
	if !r.tty {
		return rep.Render(r.out)
	}

	s := r.styles
	r.Println()
	r.Println("csvto results")
	r.Println("-------------------")

	errStmt := s.Success.Render(rep.ErrorsMsg())
	if rep.ErrorCount() > 0 {
		errStmt = s.Error.Render(rep.ErrorsMsg())
	}
	r.Printf("%s / %s\n", s.Success.Render(rep.ProcessedMsg()), errStmt)

	for _, res := range rep.Results {
		if res.Failed() {
			r.Println(s.Error.Render(res.Line()))
			continue
		}
		r.Println(res.Line())
	}

	if len(rep.Errors) > 0 {
		r.Println()
		r.Println(s.Error.Render("Error Details\n-------------"))
		for _, e := range rep.Errors {
			r.Println(e)
		}
	}
	return nil
}

func (r *Renderer) renderReportMarkdown(rep *engine.Report) {
	r.Println(FormatHeader(1, "csvto results"))
	r.Println()
	r.Println(rep.Summary())
	r.Println()

	if len(rep.Results) > 0 {
		rows := make([][]string, len(rep.Results))
		for i, res := range rep.Results {
			status := "ok"
			if res.Failed() {
				status = "mismatch"
			}
			rows[i] = []string{res.Name, res.Source, strconv.Itoa(res.RowsParsed), strconv.Itoa(res.RowsStored), status}
		}
		r.Println(FormatTable([]string{"Table", "Source", "Parsed", "Stored", "Status"}, rows))
		r.Println()
	}

	if len(rep.Errors) > 0 {
		r.Println(FormatHeader(2, "Error Details"))
		r.Println()
		for _, e := range rep.Errors {
			r.Println("- " + e)
		}
	}
}

// ColumnInfo describes one inferred column.
type ColumnInfo struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	SQLType string `json:"sql_type"`
}

// SchemaInfo describes the schema inferred for one input.
type SchemaInfo struct {
	File     string       `json:"file"`
	Table    string       `json:"table"`
	Rows     int          `json:"rows"`
	Columns  []ColumnInfo `json:"columns"`
	Errors   []string     `json:"errors,omitempty"`
	Reserved []string     `json:"reserved,omitempty"`
	DDL      string       `json:"ddl,omitempty"`
}

// RenderSchemas writes inferred schemas in the renderer's mode.
func (r *Renderer) RenderSchemas(schemas []SchemaInfo) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(schemas)
	case ModeMarkdown:
		for _, sc := range schemas {
			r.Println(FormatHeader(2, sc.Table))
			r.Println()
			r.Println(FormatKeyValue("File", sc.File))
			r.Println(FormatKeyValue("Rows", strconv.Itoa(sc.Rows)))
			if len(sc.Reserved) > 0 {
				r.Println(FormatKeyValue("Reserved words", strings.Join(sc.Reserved, ", ")))
			}
			r.Println()
			rows := make([][]string, len(sc.Columns))
			for i, c := range sc.Columns {
				rows[i] = []string{c.Name, c.Type, c.SQLType}
			}
			r.Println(FormatTable([]string{"Column", "Type", "SQL Type"}, rows))
			if sc.DDL != "" {
				r.Println()
				r.Println(FormatCodeBlock("sql", sc.DDL))
			}
			r.Println()
		}
	default:
		for _, sc := range schemas {
			r.Header(1, fmt.Sprintf("%s (%s, %d rows)", sc.Table, sc.File, sc.Rows))
			t := table.NewWriter()
			t.SetOutputMirror(r.out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Column", "Type", "SQL Type"})
			for _, c := range sc.Columns {
				t.AppendRow(table.Row{c.Name, c.Type, c.SQLType})
			}
			t.Render()
			if len(sc.Reserved) > 0 {
				r.Warning("reserved words used as column names: " + strings.Join(sc.Reserved, ", "))
			}
			for _, e := range sc.Errors {
				r.Warning(e)
			}
			r.Println()
		}
	}
	return nil
}

// RenderRuns writes recorded runs in the renderer's mode.
func (r *Renderer) RenderRuns(runs []*core.Run) error {
	if runs == nil {
		runs = []*core.Run{}
	}
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(runs)
	case ModeMarkdown:
		rows := make([][]string, len(runs))
		for i, run := range runs {
			rows[i] = runRow(run)
		}
		r.Println(FormatHeader(1, "Run history"))
		r.Println()
		r.Println(FormatTable(runHeaders, rows))
	default:
		if len(runs) == 0 {
			r.Muted("No runs recorded")
			return nil
		}
		t := table.NewWriter()
		t.SetOutputMirror(r.out)
		t.SetStyle(table.StyleLight)
		header := make(table.Row, len(runHeaders))
		for i, h := range runHeaders {
			header[i] = h
		}
		t.AppendHeader(header)
		for _, run := range runs {
			cells := runRow(run)
			row := make(table.Row, len(cells))
			for i, c := range cells {
				row[i] = c
			}
			t.AppendRow(row)
		}
		t.Render()
	}
	return nil
}

var runHeaders = []string{"ID", "Name", "Backend", "Status", "Files", "Errors", "Started"}

func runRow(run *core.Run) []string {
	return []string{
		run.ID,
		run.Name,
		run.Backend,
		string(run.Status),
		strconv.Itoa(run.Files),
		strconv.Itoa(run.Errors),
		run.StartedAt.Local().Format(time.DateTime),
	}
}

// RunDetail is the JSON form of one run with its files.
type RunDetail struct {
	*core.Run
	Files []core.FileRun `json:"file_runs"`
}

// RenderRunDetail writes one run and the per-file results it recorded.
func (r *Renderer) RenderRunDetail(run *core.Run, files []core.FileRun) error {
	if files == nil {
		files = []core.FileRun{}
	}
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.JSON(RunDetail{Run: run, Files: files})
	case ModeMarkdown:
		r.Println(FormatHeader(1, "Run "+run.ID))
		r.Println()
		r.Println(FormatKeyValue("Name", run.Name))
		r.Println(FormatKeyValue("Backend", run.Backend))
		r.Println(FormatKeyValue("Status", string(run.Status)))
		r.Println()
		rows := make([][]string, len(files))
		for i, f := range files {
			rows[i] = fileRunRow(f)
		}
		r.Println(FormatTable(fileRunHeaders, rows))
	default:
		r.Header(1, fmt.Sprintf("Run %s (%s, %s)", run.ID, run.Backend, run.Status))
		t := table.NewWriter()
		t.SetOutputMirror(r.out)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Table", "Source", "Parsed", "Stored"})
		for _, f := range files {
			t.AppendRow(table.Row{f.Table, f.Source, f.RowsParsed, f.RowsStored})
		}
		t.Render()
	}
	return nil
}

var fileRunHeaders = []string{"Table", "Source", "Parsed", "Stored"}

func fileRunRow(f core.FileRun) []string {
	return []string{f.Table, f.Source, strconv.Itoa(f.RowsParsed), strconv.Itoa(f.RowsStored)}
}
