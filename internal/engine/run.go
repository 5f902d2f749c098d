package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/parser"
)

// fileOutcome is what processing one input contributes to the report.
type fileOutcome struct {
	result *core.RunResult
	errors []string
}

// Run loads every input of the config service and returns the report.
//
// An error is returned only when the run cannot start: no adapter for the
// target or a failed connection. Everything that goes wrong with a single
// input ends up in the report.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	e.setPhase(PhaseDiscovering)
	inputs := e.svc.InputSources()
	return e.RunInputs(ctx, inputs)
}

// RunInputs loads the given inputs. See Run.
func (e *Engine) RunInputs(ctx context.Context, inputs []core.InputSource) (*Report, error) {
	start := time.Now()
	name := e.svc.RunName()

	if err := e.ensureDBConnected(ctx); err != nil {
		e.setPhase(PhaseIdle)
		return nil, err
	}

	e.logger.Info("starting run", "name", name, "inputs", len(inputs), "backend", e.dbConfig.Type)

	runID := e.beginHistory(ctx, name)

	prepared := newTableSet()
	outcomes := make([]fileOutcome, len(inputs))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, input := range inputs {
		g.Go(func() error {
			outcomes[i] = e.processFile(ctx, input, prepared)
			return nil
		})
	}
	_ = g.Wait()

	e.setPhase(PhaseReporting)
	report := &Report{
		Name:    name,
		Backend: e.dbConfig.Type,
		RunID:   runID,
		Files:   len(inputs),
	}
	for _, o := range outcomes {
		if o.result != nil {
			report.Results = append(report.Results, *o.result)
		}
		report.Errors = append(report.Errors, o.errors...)
	}
	report.Duration = time.Since(start)

	e.finishHistory(ctx, report)

	e.logger.Info("run finished",
		"name", name,
		"files", report.Files,
		"errors", len(report.Errors),
		"duration", report.Duration.Round(time.Millisecond))

	e.setPhase(PhaseDone)
	return report, nil
}

// processFile runs one input through parse, store and reconcile. It never
// returns an error: every failure becomes a report entry.
func (e *Engine) processFile(ctx context.Context, input core.InputSource, prepared *tableSet) fileOutcome {
	var out fileOutcome

	input.HasHeaders = e.svc.HasHeaders()
	e.setPhase(PhaseParsing, "file", input.Location)

	content, err := e.parser.Parse(ctx, input)
	if err != nil {
		e.logger.Warn("failed to parse input", "file", input.Location, "error", err)
		out.errors = append(out.errors, fmt.Sprintf("parse error: %v", err))
		return out
	}
	out.errors = append(out.errors, content.Errors...)

	table := e.svc.SingleTable()
	if table == "" {
		table = TableName(input)
	}

	if reserved := e.db.Dialect().ReservedColumns(content.Columns); len(reserved) > 0 {
		e.logger.Warn("column names are reserved words", "file", input.Location, "table", table, "columns", reserved)
	}

	e.setPhase(PhaseStoring, "file", input.Location, "table", table)

	if err := e.prepareTable(ctx, table, content.Columns, prepared); err != nil {
		e.logger.Warn("failed to create table", "table", table, "error", err)
		out.errors = append(out.errors, fmt.Sprintf("unable to create storage %s: %v", table, err))
		return out
	}

	prefix := e.db.CreateInsertPrefix(table, content.Columns)
	stored, err := e.db.StoreData(ctx, content.Columns, content.Rows, prefix)
	if err != nil {
		e.logger.Warn("failed to store data", "table", table, "error", err)
		out.errors = append(out.errors, fmt.Sprintf("unable to store data in %s: %v", table, err))
	}

	e.setPhase(PhaseReconciling, "file", input.Location, "table", table)
	result := core.RunResult{
		Name:       table,
		Source:     input.Location,
		RowsParsed: content.RowsScanned,
		RowsStored: stored,
	}
	if err := result.Err(); err != nil {
		e.logger.Warn("row count mismatch", "table", table, "parsed", result.RowsParsed, "stored", result.RowsStored)
	}
	out.result = &result
	return out
}

// prepareTable readies the target table for inserts. With delete-data set
// the existing rows are removed and the schema kept; if that fails the
// table is created. In single-table mode only the first input of the run
// prepares the table and later inputs append to it.
func (e *Engine) prepareTable(ctx context.Context, table string, cols []core.ColumnDefinition, prepared *tableSet) error {
	single := e.svc.SingleTable() != ""
	if single && prepared.has(table) {
		return nil
	}

	if e.svc.ShouldDeleteData() {
		err := e.db.DeleteData(ctx, table)
		if err == nil {
			prepared.add(table)
			return nil
		}
		e.logger.Debug("delete data failed, creating table", "table", table, "error", err)
	}

	if err := e.db.CreateStore(ctx, table, cols, e.svc.ShouldDropStore()); err != nil {
		return err
	}
	prepared.add(table)
	return nil
}

// TableName derives the table for an input: the base name without
// compression suffix or extension, first letter upper-cased.
func TableName(input core.InputSource) string {
	base := parser.TrimCompressionExt(input.BaseName())
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		return "Table"
	}
	r, size := utf8.DecodeRuneInString(base)
	return string(unicode.ToUpper(r)) + base[size:]
}

// tableSet tracks tables prepared during a run. Concurrent inputs that
// target the same table are not ordered against each other.
type tableSet struct {
	mu     sync.Mutex
	tables map[string]bool
}

func newTableSet() *tableSet {
	return &tableSet{tables: make(map[string]bool)}
}

func (s *tableSet) has(table string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[table]
}

func (s *tableSet) add(table string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = true
}
