package core

import (
	"fmt"
	"time"
)

// RunResult is the outcome of loading one input.
type RunResult struct {
	Name       string `json:"name"`
	Source     string `json:"source"`
	RowsParsed int    `json:"rows_parsed"`
	RowsStored int    `json:"rows_stored"`
}

// Failed reports whether fewer rows were stored than parsed.
func (r RunResult) Failed() bool {
	return r.RowsStored != r.RowsParsed
}

// Missing returns the number of parsed rows that were not stored.
func (r RunResult) Missing() int {
	return r.RowsParsed - r.RowsStored
}

// Line renders the per-file status line of the run report.
func (r RunResult) Line() string {
	if r.Failed() {
		return fmt.Sprintf("❌ %s: had %d errors", r.Name, r.Missing())
	}
	return fmt.Sprintf("✅ %s: %d records loaded", r.Name, r.RowsStored)
}

// Err returns a ReconciliationError when the result is a mismatch.
func (r RunResult) Err() error {
	if !r.Failed() {
		return nil
	}
	return &ReconciliationError{Name: r.Name, Parsed: r.RowsParsed, Stored: r.RowsStored}
}

// RunStatus represents the status of a recorded run.
type RunStatus string

// Run status values.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusPartial   RunStatus = "partial"
	RunStatusFailed    RunStatus = "failed"
)

// Run is a persisted pipeline run.
type Run struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Backend     string     `json:"backend"`
	Status      RunStatus  `json:"status"`
	Files       int        `json:"files"`
	Errors      int        `json:"errors"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// FileRun is the persisted result of one input within a run.
type FileRun struct {
	RunID      string `json:"run_id"`
	Table      string `json:"table"`
	Source     string `json:"source"`
	RowsParsed int    `json:"rows_parsed"`
	RowsStored int    `json:"rows_stored"`
}
