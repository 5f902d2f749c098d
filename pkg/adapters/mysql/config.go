package mysql

import "time"

// Params holds MySQL-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// Charset sets the connection character set (default utf8mb4).
	Charset string `mapstructure:"charset"`

	// Timeout is the dial timeout, e.g. "5s".
	Timeout time.Duration `mapstructure:"timeout"`

	// TLS selects a registered TLS config ("true", "skip-verify", "preferred").
	TLS string `mapstructure:"tls"`

	// Extra DSN parameters passed to the server as session variables.
	Extra map[string]string `mapstructure:"extra"`
}
