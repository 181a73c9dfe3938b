// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package database

import (
	"fmt"
	"sort"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers "duckdb"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "modernc.org/sqlite"             // registers "sqlite"
)

// Driver describes how to reach one database engine.
type Driver struct {
	// Name is the DB_DRIVER value.
	Name string

	// SQLName is the name registered with database/sql.
	SQLName string

	// FileBased drivers treat Credentials.Name as a file path and ignore
	// user, password, and host.
	FileBased bool

	// DSN builds the driver-specific data source name.
	DSN func(Credentials) string
}

var drivers = map[string]Driver{
	"mysql": {
		Name:    "mysql",
		SQLName: "mysql",
		DSN:     mysqlDSN,
	},
	"postgres": {
		Name:    "postgres",
		SQLName: "pgx",
		DSN: func(c Credentials) string {
			return c.ConnectionString("postgres")
		},
	},
	"duckdb": {
		Name:      "duckdb",
		SQLName:   "duckdb",
		FileBased: true,
		DSN:       duckdbDSN,
	},
	"sqlite": {
		Name:      "sqlite",
		SQLName:   "sqlite",
		FileBased: true,
		DSN: func(c Credentials) string {
			return c.Name
		},
	},
}

// LookupDriver returns the driver registered under name.
func LookupDriver(name string) (Driver, error) {
	d, ok := drivers[strings.ToLower(name)]
	if !ok {
		return Driver{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedDriver, name, strings.Join(DriverNames(), ", "))
	}
	return d, nil
}

// DriverNames returns the registered driver names, sorted.
func DriverNames() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mysqlDSN(c Credentials) string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Host
	cfg.DBName = c.Name
	cfg.ParseTime = true
	cfg.Timeout = 10 * time.Second
	return cfg.FormatDSN()
}

// duckdbDSN opens file databases read-only; the dashboard never writes.
func duckdbDSN(c Credentials) string {
	if c.Name == ":memory:" {
		return ""
	}
	return c.Name + "?access_mode=read_only"
}
