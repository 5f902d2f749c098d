package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvto/internal/state"
	"github.com/leapstack-labs/csvto/pkg/core"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded load runs",
		Long: `List the most recent load runs recorded in the history database,
or show the per-file results of a single run.`,
		Example: `  csvto history
  csvto history --limit 5 -o json
  csvto history 0b6f3c1e-8d0a-4c53-9a4e-2f1d7c9e5b21`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "l", 20, "Maximum number of runs to list")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cc := NewCommandContext(cmd)
	path := cc.Cfg.StatePath

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if len(args) == 1 {
			return core.NewUsageError("no run history at %s", path)
		}
		return cc.Renderer.RenderRuns(nil)
	}

	store := state.NewSQLiteStore(cc.Logger)
	if err := store.Open(path); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	if len(args) == 1 {
		run, err := store.GetRun(ctx, args[0])
		if errors.Is(err, state.ErrRunNotFound) {
			return core.NewUsageError("%v", err)
		}
		if err != nil {
			return err
		}
		files, err := store.ListFileRuns(ctx, run.ID)
		if err != nil {
			return err
		}
		return cc.Renderer.RenderRunDetail(run, files)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 1 {
		return core.NewUsageError("limit must be at least 1, got %d", limit)
	}
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	return cc.Renderer.RenderRuns(runs)
}
