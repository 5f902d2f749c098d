package engine

import (
	"context"

	"github.com/leapstack-labs/csvto/pkg/core"
)

// beginHistory records the start of a run. History failures are logged
// and never affect the load.
func (e *Engine) beginHistory(ctx context.Context, name string) string {
	if e.store == nil {
		return ""
	}
	run, err := e.store.CreateRun(ctx, name, e.dbConfig.Type)
	if err != nil {
		e.logger.Warn("failed to record run", "error", err)
		return ""
	}
	return run.ID
}

func (e *Engine) finishHistory(ctx context.Context, report *Report) {
	if e.store == nil || report.RunID == "" {
		return
	}
	for _, r := range report.Results {
		err := e.store.RecordFileRun(ctx, core.FileRun{
			RunID:      report.RunID,
			Table:      r.Name,
			Source:     r.Source,
			RowsParsed: r.RowsParsed,
			RowsStored: r.RowsStored,
		})
		if err != nil {
			e.logger.Warn("failed to record file result", "source", r.Source, "error", err)
		}
	}
	if err := e.store.CompleteRun(ctx, report.RunID, report.Status(), report.Files, report.ErrorCount()); err != nil {
		e.logger.Warn("failed to complete run", "run_id", report.RunID, "error", err)
	}
}
