// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/deskintel/internal/api"
	"github.com/tomtom215/deskintel/internal/config"
	"github.com/tomtom215/deskintel/internal/dashboard"
	"github.com/tomtom215/deskintel/internal/logging"
	"github.com/tomtom215/deskintel/internal/supervisor"
	"github.com/tomtom215/deskintel/internal/supervisor/services"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and JSON API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
}

// newHTTPHandler builds the full route tree over the app's data layer.
func newHTTPHandler(a *app) (http.Handler, error) {
	renderer, err := dashboard.New(a.reports, a.notices)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	handler := api.NewHandler(api.HandlerOptions{
		Reports:  a.reports,
		Queries:  a.executor,
		Database: a.provider,
		Driver:   a.cfg.Database.Driver,
		Version:  version,
	})

	sec := a.cfg.Security
	chiMiddleware := api.NewChiMiddlewareFromSecurity(sec.CORSOrigins, sec.RateLimitReqs, sec.RateLimitWindow, sec.RateLimitDisabled)

	return api.NewRouter(handler, renderer, chiMiddleware).SetupChi(), nil
}

// runServe starts the supervisor tree and blocks until ctx is canceled.
func runServe(ctx context.Context, cfg *config.Config) error {
	logging.Info().
		Str("version", version).
		Str("driver", cfg.Database.Driver).
		Str("addr", cfg.Server.Address()).
		Msg("Starting Deskintel")

	a := newApp(cfg)
	defer a.close()

	handler, err := newHTTPHandler(a)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	if cfg.Cache.WarmOnStartup {
		tree.AddDataService(services.NewWarmupService(a.reports, 0))
		logging.Info().Msg("Report warm-up added to supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
	return nil
}
