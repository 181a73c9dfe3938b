// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/deskintel/internal/logging"
)

// SupportedDrivers lists the DB_DRIVER values the connection provider accepts.
var SupportedDrivers = []string{"mysql", "postgres", "duckdb", "sqlite"}

// Validate checks that configuration values are usable. Credentials are
// not checked here.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateBreaker(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	driver := strings.ToLower(c.Database.Driver)
	supported := false
	for _, d := range SupportedDrivers {
		if d == driver {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("DB_DRIVER must be one of %s, got %q", strings.Join(SupportedDrivers, ", "), c.Database.Driver)
	}
	c.Database.Driver = driver

	if c.Database.ConnectTimeout < 0 {
		return fmt.Errorf("DB_CONNECT_TIMEOUT must not be negative, got %v", c.Database.ConnectTimeout)
	}
	if c.Database.QueryTimeout < 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must not be negative, got %v", c.Database.QueryTimeout)
	}
	if c.Database.MaxOpenConns < 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must not be negative, got %d", c.Database.MaxOpenConns)
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must not be negative, got %d", c.Database.MaxIdleConns)
	}
	if c.Database.ConnMaxLifetime < 0 {
		return fmt.Errorf("DB_CONN_MAX_LIFETIME must not be negative, got %v", c.Database.ConnMaxLifetime)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.QueryTTL < 0 {
		return fmt.Errorf("CACHE_QUERY_TTL must not be negative, got %v", c.Cache.QueryTTL)
	}
	if c.Cache.ReportTTL < 0 {
		return fmt.Errorf("CACHE_REPORT_TTL must not be negative, got %v", c.Cache.ReportTTL)
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if !c.Breaker.Enabled {
		return nil
	}
	if c.Breaker.ConsecutiveFailures == 0 {
		return fmt.Errorf("BREAKER_CONSECUTIVE_FAILURES must be at least 1 when the breaker is enabled")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive, got %v", c.Breaker.Timeout)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
