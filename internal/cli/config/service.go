package config

import (
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/csvto/internal/cli/output"
	"github.com/leapstack-labs/csvto/internal/discovery"
	"github.com/leapstack-labs/csvto/internal/engine"
	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/parser"
)

var _ engine.ConfigService = (*Config)(nil)

// Validate checks the settings that do not depend on the filesystem.
// Every failure is a *core.UsageError.
func (c *Config) Validate() error {
	if len(c.Files) == 0 && len(c.Dirs) == 0 {
		return core.NewUsageError("no input given\nHint: pass files as arguments or use --dir")
	}
	if c.Concurrency < 1 {
		return core.NewUsageError("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	if _, err := c.CommentRune(); err != nil {
		return err
	}
	if !output.Mode(c.OutputFormat).IsValid() {
		return core.NewUsageError("invalid output format %q (valid: auto, text, markdown, json)", c.OutputFormat)
	}
	if _, err := parser.LookupEncoding(c.Encoding); err != nil {
		return core.NewUsageError("%v", err)
	}
	if c.Watch && len(c.Dirs) == 0 {
		return core.NewUsageError("--watch needs at least one --dir")
	}
	return nil
}

// Discover resolves files and directories into input sources.
func (c *Config) Discover(logger *slog.Logger) error {
	sources, err := discovery.Discover(discovery.Options{
		Files:      c.Files,
		Dirs:       c.Dirs,
		Extension:  c.Extension,
		HasHeaders: c.HasHeaders(),
	}, logger)
	if err != nil {
		return err
	}
	c.sources = sources
	return nil
}

// InputSources returns the discovered inputs.
func (c *Config) InputSources() []core.InputSource {
	return c.sources
}

// HasHeaders reports whether the first record of each input is a header.
func (c *Config) HasHeaders() bool {
	return !c.NoHeaders
}

// ShouldDropStore reports whether existing tables are dropped first.
func (c *Config) ShouldDropStore() bool {
	return c.Drop
}

// SingleTable returns the table all inputs load into, or "".
func (c *Config) SingleTable() string {
	return strings.TrimSpace(c.OneTable)
}

// ShouldDeleteData reports whether existing rows are removed before loading.
func (c *Config) ShouldDeleteData() bool {
	return c.DeleteData
}

// RunName returns the run name used for file databases and history.
func (c *Config) RunName() string {
	if c.Name == "" {
		return DefaultName
	}
	return c.Name
}

// HistoryPath returns the run history database, or "" when disabled.
func (c *Config) HistoryPath() string {
	if c.NoHistory {
		return ""
	}
	return c.StatePath
}

// DelimiterRune returns the field delimiter. "tab" and `\t` mean a tab.
func (c *Config) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "", ",":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, err := singleRune("delimiter", c.Delimiter)
	if err != nil {
		return 0, err
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, core.NewUsageError("invalid delimiter %q", c.Delimiter)
	}
	return r, nil
}

// CommentRune returns the comment character, or 0 when none is set. It
// must differ from the delimiter.
func (c *Config) CommentRune() (rune, error) {
	r, err := singleRune("comment", c.Comment)
	if err != nil || r == 0 {
		return r, err
	}
	if r == '"' || r == '\r' || r == '\n' {
		return 0, core.NewUsageError("invalid comment character %q", c.Comment)
	}
	if delim, err := c.DelimiterRune(); err == nil && delim == r {
		return 0, core.NewUsageError("comment character %q must differ from the delimiter", c.Comment)
	}
	return r, nil
}

// ParserOptions returns the CSV decoding options.
func (c *Config) ParserOptions() parser.Options {
	delim, _ := c.DelimiterRune()
	comment, _ := c.CommentRune()
	return parser.Options{
		Delimiter:        delim,
		Comment:          comment,
		LazyQuotes:       c.LazyQuotes,
		TrimLeadingSpace: c.TrimLeadingSpace,
		Encoding:         c.Encoding,
	}
}

func singleRune(field, s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, core.NewUsageError("%s must be a single character, got %q", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// NewLogger builds the CLI logger: a text handler on w at the configured
// level, or debug when verbose.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level := ParseLogLevel(c.LogLevel)
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLogLevel maps debug, info, warn and error to slog levels. Unknown
// values mean warn.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
