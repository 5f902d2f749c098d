// Package cli provides the command-line interface for csvto.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/csvto/internal/cli/commands"
	"github.com/leapstack-labs/csvto/internal/cli/config"
	"github.com/leapstack-labs/csvto/pkg/core"

	// Storage backends register themselves on import.
	_ "github.com/leapstack-labs/csvto/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/csvto/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/csvto/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/csvto/pkg/adapters/sqlite"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "csvto",
		Short: "csvto - load CSV files into SQL databases",
		Long: `csvto loads CSV files into SQLite, PostgreSQL, MySQL or DuckDB.

Every file becomes a table with column types inferred from its data.
Malformed rows are skipped and reported, and each file's parsed and
stored row counts are reconciled at the end of the run.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return core.NewUsageError("%v", err)
			}

			logger := cfg.NewLogger(cmd.ErrOrStderr())
			ctx := context.WithValue(cmd.Context(), config.ConfigKey(), cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
` + fmt.Sprintf("commit %s, built %s\n", GitCommit, BuildDate))

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return core.NewUsageError("%v", err)
	})

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: csvto.yaml in or above the working directory)")
	pf.BoolP("verbose", "v", false, "Verbose output (debug logging)")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	pf.String("state", "", "Path to the run history database")
	pf.Bool("no-history", false, "Do not record runs in the history database")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewLoadCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for csvto.

To load completions:

Bash:
  $ source <(csvto completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ csvto completion bash > /etc/bash_completion.d/csvto
  # macOS:
  $ csvto completion bash > $(brew --prefix)/etc/bash_completion.d/csvto

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ csvto completion zsh > "${fpath[1]}/_csvto"

Fish:
  $ csvto completion fish | source

  # To load completions for each session, execute once:
  $ csvto completion fish > ~/.config/fish/completions/csvto.fish

PowerShell:
  PS> csvto completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
