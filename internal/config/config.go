// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

// Package config loads Deskintel configuration.
//
// Configuration Loading Order (Koanf v2, later layers win):
//  1. Defaults: built-in values for every optional setting
//  2. Config File: optional YAML file (config.yaml, or CONFIG_PATH)
//  3. Dotenv File: optional .env in the working directory (or DOTENV_PATH)
//  4. Environment Variables: the process environment
//
// Database credentials (DB_USER, DB_PASSWORD, DB_HOST, DB_NAME) have no
// defaults and are deliberately not checked by Validate. A missing
// credential is reported on the dashboard by the connection provider
// instead of stopping the process.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Cache    CacheConfig    `koanf:"cache"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig describes the reporting database connection.
type DatabaseConfig struct {
	// Driver selects the SQL driver: mysql, postgres, duckdb, sqlite.
	// Default: mysql
	Driver string `koanf:"driver"`

	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Host     string `koanf:"host"`

	// Name is the database name, or the file path for duckdb and sqlite.
	Name string `koanf:"name"`

	// ConnectTimeout bounds the ping performed when the handle is created.
	// Default: 10s
	ConnectTimeout time.Duration `koanf:"connect_timeout"`

	// QueryTimeout bounds a single report query. Zero disables the limit.
	QueryTimeout time.Duration `koanf:"query_timeout"`

	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is development or production.
	Environment string `koanf:"environment"`
}

// CacheConfig controls the query and report memos.
type CacheConfig struct {
	// QueryTTL is how long a query result stays cached. Zero keeps results
	// for the lifetime of the process.
	QueryTTL time.Duration `koanf:"query_ttl"`

	// ReportTTL is how long a formatted report stays cached. Zero keeps
	// reports for the lifetime of the process.
	ReportTTL time.Duration `koanf:"report_ttl"`

	// WarmOnStartup builds all three reports once the server starts.
	WarmOnStartup bool `koanf:"warm_on_startup"`
}

// BreakerConfig configures the circuit breaker around query execution.
type BreakerConfig struct {
	Enabled bool `koanf:"enabled"`

	// MaxRequests allowed through while half-open.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval is the cyclic period of the closed state for clearing counts.
	Interval time.Duration `koanf:"interval"`

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration `koanf:"timeout"`

	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32 `koanf:"consecutive_failures"`
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logger settings passed to logging.Init.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	Caller bool `koanf:"caller"`
}

// Address returns the host:port the HTTP server listens on.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
