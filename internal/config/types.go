// Package config provides the shared target configuration for csvto.
// It is decoupled from CLI concerns: commands, the engine and tests all
// describe a storage backend with a TargetConfig.
package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/csvto/pkg/adapter"
	"github.com/leapstack-labs/csvto/pkg/core"
	"github.com/leapstack-labs/csvto/pkg/dialect"
)

// TargetConfig holds storage backend configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // sqlite, postgres, mysql, duckdb

	// Connection is the raw connection string: a file path for SQLite and
	// DuckDB, a URL or DSN for Postgres and MySQL.
	Connection string `koanf:"connection"`

	// File-based databases (SQLite, DuckDB)
	Database string `koanf:"database"` // file path or database name

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Common
	Schema string `koanf:"schema"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`

	// Params holds adapter-specific configuration (e.g. SQLite pragmas)
	Params map[string]any `koanf:"params"`
}

// DefaultSchemaForType returns the default schema for a database type.
// It looks up the dialect in the registry; if not found, returns "" so the
// backend's own default applies.
func DefaultSchemaForType(dbType string) string {
	if d, ok := dialect.Get(dbType); ok {
		return d.DefaultSchema
	}
	return ""
}

// IsFileBased reports whether the target type stores into a local file.
func IsFileBased(dbType string) bool {
	switch strings.ToLower(dbType) {
	case "sqlite", "duckdb":
		return true
	default:
		return false
	}
}

// Validate checks if the target configuration is valid.
// It uses the adapter registry to determine which adapter types are available.
func (t *TargetConfig) Validate() error {
	if t.Type == "" {
		return core.NewUsageError("target type is required")
	}

	// Use adapter registry as single source of truth
	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	if !IsFileBased(t.Type) && t.Options["dsn"] == "" && t.Database == "" {
		return core.NewUsageError("target %s needs a connection string or a database name", t.Type)
	}

	return nil
}

// ToAdapterConfig converts the target into the adapter connection config.
func (t *TargetConfig) ToAdapterConfig() adapter.Config {
	cfg := adapter.Config{
		Type:     strings.ToLower(t.Type),
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
		Params:   t.Params,
	}
	if IsFileBased(t.Type) {
		cfg.Path = t.Database
	}
	return cfg
}

// String describes the target without credentials.
func (t *TargetConfig) String() string {
	switch {
	case IsFileBased(t.Type):
		return fmt.Sprintf("%s:%s", t.Type, t.Database)
	case t.Host != "":
		return fmt.Sprintf("%s://%s:%d/%s", t.Type, t.Host, t.Port, t.Database)
	default:
		return t.Type
	}
}
