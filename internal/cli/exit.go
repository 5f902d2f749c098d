package cli

import (
	"errors"

	"github.com/leapstack-labs/csvto/internal/cli/commands"
	"github.com/leapstack-labs/csvto/pkg/adapter"
	"github.com/leapstack-labs/csvto/pkg/core"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitRunError = 1
	ExitUsage    = 64 // EX_USAGE
	ExitIO       = 74 // EX_IOERR
)

// ExitCode maps a command error to the process exit code. Errors that are
// neither usage errors nor --fail-on-error failures stopped the run before
// it could report, which only happens for I/O and connection failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *core.UsageError
	var adapterErr *adapter.UnknownAdapterError
	switch {
	case errors.Is(err, commands.ErrRunHadErrors):
		return ExitRunError
	case errors.As(err, &usageErr), errors.As(err, &adapterErr):
		return ExitUsage
	default:
		return ExitIO
	}
}
