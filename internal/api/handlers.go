// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

// Package api serves the dashboard page and the JSON API.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response envelope helpers
//   - handlers_reports.go: report endpoints
//   - handlers_health.go: liveness and readiness probes
//   - handlers_cache.go: memo statistics and invalidation
package api

import (
	"context"
	"time"

	"github.com/tomtom215/deskintel/internal/cache"
	"github.com/tomtom215/deskintel/internal/reports"
)

// ReportService is the part of *reports.Service the API needs.
type ReportService interface {
	ByName(ctx context.Context, name string) (reports.Displayer, error)
	Cached(name string) bool
	Stats() cache.Stats
	Clear()
}

// QueryCache is the part of *database.Executor the API needs.
type QueryCache interface {
	Stats() cache.Stats
	Clear()
	BreakerState() string
}

// Database is the part of *database.Provider the readiness probe needs.
type Database interface {
	Ping(ctx context.Context) error
}

// HandlerOptions wires the handler to the data layer.
type HandlerOptions struct {
	Reports  ReportService
	Queries  QueryCache
	Database Database
	Driver   string
	Version  string

	// PingTimeout bounds the readiness ping. Default: 2s
	PingTimeout time.Duration
}

// Handler contains dependencies for API handlers
type Handler struct {
	reports     ReportService
	queries     QueryCache
	db          Database
	driver      string
	version     string
	pingTimeout time.Duration
	startTime   time.Time
}

// NewHandler returns a Handler. Database may be nil, in which case the
// readiness probe reports degraded.
func NewHandler(opts HandlerOptions) *Handler {
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 2 * time.Second
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	return &Handler{
		reports:     opts.Reports,
		queries:     opts.Queries,
		db:          opts.Database,
		driver:      opts.Driver,
		version:     opts.Version,
		pingTimeout: opts.PingTimeout,
		startTime:   time.Now(),
	}
}
