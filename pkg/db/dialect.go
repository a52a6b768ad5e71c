package db

import (
	"fmt"
	"strconv"
	"strings"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Dialect captures the differences between the supported SQL engines.
type Dialect interface {
	// Name returns the database/sql driver name.
	Name() string
	// Schema returns the DDL that creates the ledger tables if absent.
	Schema() string
	// Rebind rewrites '?' placeholders into the engine's native form.
	Rebind(query string) string
	// MaxOpenConns returns the pool size suited to the engine.
	MaxOpenConns() int
}

// DialectFor returns the dialect for a driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "", DriverSQLite, "sqlite":
		return sqliteDialect{}, nil
	case DriverPostgres, "postgres", "postgresql":
		return postgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return DriverSQLite }

func (sqliteDialect) Schema() string { return sqliteSchema }

func (sqliteDialect) Rebind(query string) string { return query }

// SQLite serializes writers anyway; one connection avoids SQLITE_BUSY between pooled connections.
func (sqliteDialect) MaxOpenConns() int { return 1 }

type postgresDialect struct{}

func (postgresDialect) Name() string { return DriverPostgres }

func (postgresDialect) Schema() string { return postgresSchema }

func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (postgresDialect) MaxOpenConns() int { return 25 }
