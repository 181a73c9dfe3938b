// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package main

import (
	"github.com/tomtom215/deskintel/internal/cache"
	"github.com/tomtom215/deskintel/internal/config"
	"github.com/tomtom215/deskintel/internal/dashboard"
	"github.com/tomtom215/deskintel/internal/database"
	"github.com/tomtom215/deskintel/internal/logging"
	"github.com/tomtom215/deskintel/internal/reports"
)

// app is the data layer shared by every command: one provider, one
// executor, one report service, and the notice board they report into.
type app struct {
	cfg      *config.Config
	notices  *dashboard.NoticeBoard
	provider *database.Provider
	executor *database.Executor
	reports  *reports.Service

	queryMemo  *cache.Memo[*database.Table]
	reportMemo *cache.Memo[any]
}

// newApp wires the data layer. Nothing connects until the first report is
// requested.
func newApp(cfg *config.Config) *app {
	notices := dashboard.NewNoticeBoard()

	provider := database.NewProvider(database.ProviderOptions{
		Driver: cfg.Database.Driver,
		Credentials: database.StaticCredentials(database.Credentials{
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Host:     cfg.Database.Host,
			Name:     cfg.Database.Name,
		}),
		ConnectTimeout:  cfg.Database.ConnectTimeout,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Reporter:        notices,
	})

	execOpts := database.ExecutorOptions{QueryTimeout: cfg.Database.QueryTimeout}
	if cfg.Breaker.Enabled {
		execOpts.Breaker = &database.BreakerOptions{
			Name:                "report-queries",
			MaxRequests:         cfg.Breaker.MaxRequests,
			Interval:            cfg.Breaker.Interval,
			Timeout:             cfg.Breaker.Timeout,
			ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
		}
	}

	queryMemo := cache.NewMemo[*database.Table]("queries", cfg.Cache.QueryTTL)
	reportMemo := cache.NewMemo[any]("reports", cfg.Cache.ReportTTL)
	executor := database.NewExecutor(provider, queryMemo, execOpts)

	return &app{
		cfg:        cfg,
		notices:    notices,
		provider:   provider,
		executor:   executor,
		reports:    reports.NewService(executor, reportMemo),
		queryMemo:  queryMemo,
		reportMemo: reportMemo,
	}
}

// close releases the connection pool and stops memo cleanup.
func (a *app) close() {
	a.queryMemo.Close()
	a.reportMemo.Close()
	if err := a.provider.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing database")
	}
}
