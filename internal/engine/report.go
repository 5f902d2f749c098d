package engine

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/leapstack-labs/csvto/pkg/core"
)

// Report is the consolidated outcome of a run.
type Report struct {
	Name     string           `json:"name"`
	Backend  string           `json:"backend"`
	RunID    string           `json:"run_id,omitempty"`
	Files    int              `json:"files"`
	Results  []core.RunResult `json:"results"`
	Errors   []string         `json:"errors"`
	Duration time.Duration    `json:"duration_ns"`
}

// ErrorCount returns the number of collected error strings.
func (r *Report) ErrorCount() int {
	return len(r.Errors)
}

// HasErrors reports whether any error was collected or any input stored
// fewer rows than it parsed.
func (r *Report) HasErrors() bool {
	if len(r.Errors) > 0 {
		return true
	}
	for _, res := range r.Results {
		if res.Failed() {
			return true
		}
	}
	return false
}

// Status classifies the run for history.
func (r *Report) Status() core.RunStatus {
	switch {
	case !r.HasErrors():
		return core.RunStatusCompleted
	case len(r.Results) == 0:
		return core.RunStatusFailed
	default:
		return core.RunStatusPartial
	}
}

// Summary returns the "N files processed / M errors" line.
func (r *Report) Summary() string {
	return fmt.Sprintf("%s / %s", r.ProcessedMsg(), r.ErrorsMsg())
}

// ProcessedMsg returns the processed-files half of the summary.
func (r *Report) ProcessedMsg() string {
	return fmt.Sprintf("%d files processed", r.Files)
}

// ErrorsMsg returns the error half of the summary.
func (r *Report) ErrorsMsg() string {
	if r.ErrorCount() == 0 {
		return "0 errors"
	}
	return fmt.Sprintf("%d Errors", r.ErrorCount())
}

// Lines returns the per-input status lines in input order.
func (r *Report) Lines() []string {
	lines := make([]string, len(r.Results))
	for i, res := range r.Results {
		lines[i] = res.Line()
	}
	return lines
}

// Render writes the plain-text report.
func (r *Report) Render(w io.Writer) error {
	var b strings.Builder
	b.WriteString("\ncsvto results\n")
	b.WriteString("-------------------\n")
	b.WriteString(r.Summary())
	b.WriteByte('\n')
	for _, line := range r.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(r.Errors) > 0 {
		b.WriteString("\nError Details\n-------------\n")
		for _, e := range r.Errors {
			b.WriteString(e)
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
