package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvto/internal/cli/config"
	"github.com/leapstack-labs/csvto/internal/cli/output"
	"github.com/leapstack-labs/csvto/internal/engine"
	"github.com/leapstack-labs/csvto/pkg/core"
)

// ErrRunHadErrors is returned by load when --fail-on-error is set and the
// run recorded any error or row-count mismatch.
var ErrRunHadErrors = errors.New("run completed with errors")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the config, logger and renderer stored on the
// command context by the root command.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// ensureStateDir creates the directory holding the history database.
func ensureStateDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	stateDir := filepath.Dir(path)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	return nil
}

func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	target, err := cfg.ResolveTarget()
	if err != nil {
		return nil, err
	}

	statePath := cfg.HistoryPath()
	if err := ensureStateDir(statePath); err != nil {
		return nil, err
	}

	logger.Debug("resolved target", "target", target.String())

	return engine.New(engine.Config{
		Service:     cfg,
		Target:      target.ToAdapterConfig(),
		Parser:      cfg.ParserOptions(),
		Concurrency: cfg.Concurrency,
		StatePath:   statePath,
		Logger:      logger,
	})
}

// usageArgs wraps a cobra argument validator so its failures are usage
// errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return core.NewUsageError("%v", err)
		}
		return nil
	}
}

// addInputFlags registers the flags shared by commands that read CSV input.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceP("dir", "d", nil, "Directory to scan for input files (repeatable)")
	f.StringP("extension", "e", config.DefaultExtension, "File extension matched in directories")
	f.Bool("no-headers", false, "Treat the first record as data; columns are named col_0, col_1, ...")
	f.String("delimiter", config.DefaultDelimiter, "Field delimiter (a single character, or \"tab\")")
	f.String("comment", "", "Skip lines starting with this character")
	f.String("encoding", "", "Input character set (e.g. latin1, windows-1252; default utf-8)")
	f.Bool("lazy-quotes", false, "Allow quotes inside unquoted fields")
	f.Bool("trim-leading-space", false, "Ignore leading white space in fields")
	f.StringP("type", "t", "", "Storage backend (sqlite|postgres|mysql|duckdb)")

	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"sqlite", "postgres", "mysql", "duckdb"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkFlagDirname("dir")
}
