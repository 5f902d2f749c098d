// Package config provides configuration management for the csvto CLI.
//
// Settings are layered from defaults, csvto.yaml, CSVTO_ environment
// variables and command-line flags. The loaded Config also serves the
// load engine as its engine.ConfigService once inputs are discovered.
package config

import (
	sharedcfg "github.com/leapstack-labs/csvto/internal/config"
	"github.com/leapstack-labs/csvto/pkg/core"
)

// TargetConfig is an alias for the shared target configuration.
// This allows CLI code to use config.TargetConfig without importing internal/config.
type TargetConfig = sharedcfg.TargetConfig

// Config holds all CLI configuration options.
type Config struct {
	// Inputs
	Files     []string `koanf:"files"`
	Dirs      []string `koanf:"dirs"`
	Extension string   `koanf:"extension"`

	// Target selection
	Type       string        `koanf:"type"`
	Connection string        `koanf:"connection"`
	Name       string        `koanf:"name"`
	Target     *TargetConfig `koanf:"target"`

	// Load behaviour
	Drop        bool   `koanf:"drop"`
	NoHeaders   bool   `koanf:"no_headers"`
	OneTable    string `koanf:"one_table"`
	DeleteData  bool   `koanf:"delete_data"`
	Concurrency int    `koanf:"concurrency"`
	Watch       bool   `koanf:"watch"`
	FailOnError bool   `koanf:"fail_on_error"`

	// Decoding
	Delimiter        string `koanf:"delimiter"`
	Comment          string `koanf:"comment"`
	Encoding         string `koanf:"encoding"`
	LazyQuotes       bool   `koanf:"lazy_quotes"`
	TrimLeadingSpace bool   `koanf:"trim_leading_space"`

	// History
	StatePath string `koanf:"state_path"`
	NoHistory bool   `koanf:"no_history"`

	// Presentation
	Verbose      bool   `koanf:"verbose"`
	LogLevel     string `koanf:"log_level"`
	OutputFormat string `koanf:"output"`

	sources []core.InputSource
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultExtension   = sharedcfg.DefaultExtension
	DefaultName        = sharedcfg.DefaultName
	DefaultStateFile   = ".csvto/history.db"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel    = "warn"
	DefaultConcurrency = 1
	DefaultDelimiter   = ","
)
