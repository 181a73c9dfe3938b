// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a YAML config file.
// The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/deskintel/config.yaml",
}

const (
	// ConfigPathEnvVar overrides the YAML config file path.
	ConfigPathEnvVar = "CONFIG_PATH"

	// DotEnvPathEnvVar overrides the dotenv file path.
	DotEnvPathEnvVar = "DOTENV_PATH"

	// DefaultDotEnvPath is read from the working directory when present.
	DefaultDotEnvPath = ".env"
)

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          "mysql",
			ConnectTimeout:  10 * time.Second,
			QueryTimeout:    0,
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Server: ServerConfig{
			Port:            8501,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Cache: CacheConfig{
			QueryTTL:      0,
			ReportTTL:     0,
			WarmOnStartup: true,
		},
		Breaker: BreakerConfig{
			Enabled:             true,
			MaxRequests:         1,
			Interval:            time.Minute,
			Timeout:             30 * time.Second,
			ConsecutiveFailures: 5,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from defaults, the optional YAML file, the
// optional dotenv file, and the environment, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := loadDotEnv(k, dotEnvPath()); err != nil {
		return nil, err
	}

	// DB_USER -> database.user, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func dotEnvPath() string {
	if p := os.Getenv(DotEnvPathEnvVar); p != "" {
		return p
	}
	return DefaultDotEnvPath
}

// loadDotEnv merges a dotenv file into k using the same name mapping as
// the process environment. A missing file is not an error.
func loadDotEnv(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	kd := koanf.New(".")
	if err := kd.Load(file.Provider(path), dotenv.Parser()); err != nil {
		return fmt.Errorf("failed to load dotenv file %s: %w", path, err)
	}

	for _, key := range kd.Keys() {
		target := envTransformFunc(key)
		if target == "" {
			continue
		}
		if err := k.Set(target, kd.String(key)); err != nil {
			return fmt.Errorf("failed to set %s from %s: %w", target, path, err)
		}
	}
	return nil
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	// Credentials, read the same way the dashboard always has.
	"db_user":     "database.user",
	"db_password": "database.password",
	"db_host":     "database.host",
	"db_name":     "database.name",

	"db_driver":            "database.driver",
	"db_connect_timeout":   "database.connect_timeout",
	"db_query_timeout":     "database.query_timeout",
	"db_max_open_conns":    "database.max_open_conns",
	"db_max_idle_conns":    "database.max_idle_conns",
	"db_conn_max_lifetime": "database.conn_max_lifetime",

	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"cache_query_ttl":       "cache.query_ttl",
	"cache_report_ttl":      "cache.report_ttl",
	"cache_warm_on_startup": "cache.warm_on_startup",

	"breaker_enabled":              "breaker.enabled",
	"breaker_max_requests":         "breaker.max_requests",
	"breaker_interval":             "breaker.interval",
	"breaker_timeout":              "breaker.timeout",
	"breaker_consecutive_failures": "breaker.consecutive_failures",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unknown names return "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
