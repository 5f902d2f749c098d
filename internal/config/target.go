package config

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/csvto/pkg/core"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// ExpandEnvVars expands ${VAR} patterns in a string with environment
// variable values. Unknown variables are left as written.
func ExpandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})
}

// ParseTarget builds a TargetConfig from the backend discriminator and a
// connection string.
//
// For sqlite and duckdb the connection is a file path. An empty connection
// becomes "{name}.db" and an existing directory becomes "{dir}/{name}.db".
// For postgres the connection is a postgres:// URL or a key=value DSN. For
// mysql it is a driver DSN (user:pass@tcp(host:3306)/db) or a mysql:// URL.
// An empty network connection uses name as the database on localhost.
func ParseTarget(dbType, connection, name string) (*TargetConfig, error) {
	t := &TargetConfig{Type: strings.ToLower(strings.TrimSpace(dbType))}
	if t.Type == "" {
		t.Type = DefaultType
	}
	if name == "" {
		name = DefaultName
	}
	connection = ExpandEnvVars(strings.TrimSpace(connection))

	switch t.Type {
	case "sqlite", "duckdb":
		t.Database = filePath(connection, name, t.Type)
	case "postgres":
		if connection == "" {
			t.Database = name
			break
		}
		t.Options = map[string]string{"dsn": connection}
		if u, err := url.Parse(connection); err == nil && (u.Scheme == "postgres" || u.Scheme == "postgresql") {
			fillFromURL(t, u)
		}
	case "mysql":
		if connection == "" {
			t.Database = name
			break
		}
		if strings.HasPrefix(connection, "mysql://") {
			u, err := url.Parse(connection)
			if err != nil {
				return nil, core.NewUsageError("invalid mysql connection URL: %v", err)
			}
			fillFromURL(t, u)
			break
		}
		t.Options = map[string]string{"dsn": connection}
	}

	ApplyTargetDefaults(t)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// filePath resolves the database file for file-based backends.
func filePath(connection, name, dbType string) string {
	ext := ".db"
	if dbType == "duckdb" {
		ext = ".duckdb"
	}
	switch {
	case connection == ":memory:":
		return connection
	case connection == "":
		return name + ext
	}
	if info, err := os.Stat(connection); err == nil && info.IsDir() {
		return filepath.Join(connection, name+ext)
	}
	return connection
}

// fillFromURL copies the parts of a connection URL into the target.
func fillFromURL(t *TargetConfig, u *url.URL) {
	t.Host = u.Hostname()
	if p, err := strconv.Atoi(u.Port()); err == nil {
		t.Port = p
	}
	t.Database = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		t.User = u.User.Username()
		t.Password, _ = u.User.Password()
	}
}
