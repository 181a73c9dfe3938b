// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/tomtom215/deskintel/docs" // Import generated swagger docs
	"github.com/tomtom215/deskintel/internal/config"
	"github.com/tomtom215/deskintel/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "deskintel",
		Short: "Deskintel - Hybrid workplace intelligence dashboard",
		Long: `Deskintel serves a read-only analytics dashboard over the growth funnel
and office utilization marts, plus a small JSON API for the same reports.`,
		SilenceUsage: true,
		// serve is the default command.
		RunE: serve.RunE,
	}
	root.AddCommand(serve, newReportCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "deskintel %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

// loadConfig loads configuration and initializes logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})
	return cfg, nil
}
