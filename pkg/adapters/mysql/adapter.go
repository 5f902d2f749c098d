// Package mysql provides a MySQL storage adapter for csvto.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/leapstack-labs/csvto/pkg/adapter"
)

// Adapter implements the adapter.Adapter interface for MySQL.
//
// Values are embedded as literals, one INSERT statement per row.
type Adapter struct {
	adapter.BaseSQLAdapter
}

var _ adapter.Adapter = (*Adapter)(nil)

const defaultCharset = "utf8mb4"

// New creates a new MySQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	return &Adapter{
		BaseSQLAdapter: adapter.NewBase(MySQL, logger),
	}
}

// Connect establishes a connection to MySQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	var params Params
	if err := adapter.DecodeParams(cfg.Params, &params); err != nil {
		return fmt.Errorf("mysql: %w", err)
	}

	mcfg, err := buildMySQLConfig(cfg, params)
	if err != nil {
		return err
	}

	a.Logger.Debug("connecting to mysql", slog.String("addr", mcfg.Addr), slog.String("database", mcfg.DBName))

	db, err := sql.Open("mysql", mcfg.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to open mysql connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping mysql: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildMySQLConfig turns the adapter config into a driver config. A DSN in
// Options["dsn"] (user:pass@tcp(host:3306)/db) is parsed and then refined
// by params. Configs built from fields default to utf8mb4; a DSN keeps its
// own charset unless params set one.
func buildMySQLConfig(cfg adapter.Config, params Params) (*mysql.Config, error) {
	var mcfg *mysql.Config
	charset := params.Charset
	if dsn := cfg.Options["dsn"]; dsn != "" {
		parsed, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql connection string: %w", err)
		}
		mcfg = parsed
	} else {
		host := cfg.Host
		if host == "" {
			host = "localhost"
		}
		port := cfg.Port
		if port == 0 {
			port = 3306
		}

		mcfg = mysql.NewConfig()
		mcfg.Net = "tcp"
		mcfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
		mcfg.User = cfg.Username
		mcfg.Passwd = cfg.Password
		mcfg.DBName = cfg.Database
		if charset == "" {
			charset = defaultCharset
		}
	}

	if charset != "" {
		if err := mcfg.Apply(mysql.Charset(charset, mcfg.Collation)); err != nil {
			return nil, fmt.Errorf("invalid mysql charset: %w", err)
		}
	}
	if len(params.Extra) > 0 && mcfg.Params == nil {
		mcfg.Params = make(map[string]string, len(params.Extra))
	}
	for k, v := range params.Extra {
		mcfg.Params[k] = v
	}
	if params.Timeout > 0 {
		mcfg.Timeout = params.Timeout
	}
	if params.TLS != "" {
		mcfg.TLSConfig = params.TLS
	}

	return mcfg, nil
}
