// Package postgres provides a PostgreSQL storage adapter for csvto.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/leapstack-labs/csvto/pkg/adapter"
)

// Adapter implements the adapter.Adapter interface for PostgreSQL.
//
// Values are embedded as literals: each row is sent as its own
// INSERT INTO t (...) VALUES (...) statement.
type Adapter struct {
	adapter.BaseSQLAdapter
}

var _ adapter.Adapter = (*Adapter)(nil)

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	return &Adapter{
		BaseSQLAdapter: adapter.NewBase(Postgres, logger),
	}
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	var params Params
	if err := adapter.DecodeParams(cfg.Params, &params); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}

	dsn := buildPostgresDSN(cfg, params)

	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("invalid postgres connection string: %w", err)
	}

	a.Logger.Debug("connecting to postgres", slog.String("host", connCfg.Host), slog.String("database", connCfg.Database))

	db := stdlib.OpenDB(*connCfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildPostgresDSN constructs a PostgreSQL connection string. A raw DSN or
// postgres:// URL in Options["dsn"] is used as given.
func buildPostgresDSN(cfg adapter.Config, params Params) string {
	if dsn := cfg.Options["dsn"]; dsn != "" {
		return dsn
	}

	// Build key=value format: host=localhost port=5432 user=postgres ...
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if mode, ok := cfg.Options["sslmode"]; ok {
		sslmode = mode
	}
	if params.SSLMode != "" {
		sslmode = params.SSLMode
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", quoteDSNValue(cfg.Password))
	}

	searchPath := params.SearchPath
	if searchPath == "" {
		searchPath = cfg.Schema
	}
	if searchPath != "" {
		dsn += fmt.Sprintf(" search_path=%s", searchPath)
	}
	if params.ApplicationName != "" {
		dsn += fmt.Sprintf(" application_name=%s", quoteDSNValue(params.ApplicationName))
	}
	if params.ConnectTimeout > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", params.ConnectTimeout)
	}

	return dsn
}

// quoteDSNValue single-quotes a key=value DSN value when it contains
// spaces or quotes.
func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
