// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

// Package reports builds the three dashboard reports: the growth funnel,
// office utilization, and sales propensity.
//
// Each report is memoized under its own key, so after the first successful
// build a report never runs its query again for the life of the memo.
package reports

import (
	"context"
	"fmt"

	"github.com/tomtom215/deskintel/internal/cache"
	"github.com/tomtom215/deskintel/internal/database"
	"github.com/tomtom215/deskintel/internal/logging"
	"github.com/tomtom215/deskintel/internal/metrics"
)

// Memo keys.
const (
	KeyFunnel      = "report:funnel"
	KeyUtilization = "report:utilization"
	KeyPropensity  = "report:propensity"
)

// Names accepted by Service.ByName, in dashboard tab order.
var Names = []string{"propensity", "funnel", "utilization"}

// Runner executes a query. *database.Executor implements it. Report builds
// call it with a context detached from the requesting caller.
type Runner interface {
	Run(ctx context.Context, query string) (*database.Table, error)
}

// Service builds and memoizes reports.
type Service struct {
	runner Runner
	memo   *cache.Memo[any]
}

// NewService returns a Service that runs queries through runner and stores
// finished reports in memo.
func NewService(runner Runner, memo *cache.Memo[any]) *Service {
	return &Service{runner: runner, memo: memo}
}

// Funnel returns the growth funnel report. An empty report means there is
// no database handle; a query failure is returned as the executor's
// *database.DataAccessError.
func (s *Service) Funnel(ctx context.Context) (*FunnelReport, error) {
	v, err := s.build(ctx, KeyFunnel, "funnel", func() (any, error) {
		tbl, err := s.runner.Run(context.WithoutCancel(ctx), FunnelQuery)
		if err != nil {
			return nil, err
		}
		r := buildFunnel(tbl)
		return r, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*FunnelReport), nil
}

// Utilization returns the office utilization report.
func (s *Service) Utilization(ctx context.Context) (*UtilizationReport, error) {
	v, err := s.build(ctx, KeyUtilization, "utilization", func() (any, error) {
		tbl, err := s.runner.Run(context.WithoutCancel(ctx), UtilizationQuery)
		if err != nil {
			return nil, err
		}
		return buildUtilization(tbl), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*UtilizationReport), nil
}

// Propensity returns the static propensity report. It never fails.
func (s *Service) Propensity(ctx context.Context) (*PropensityReport, error) {
	v, err := s.build(ctx, KeyPropensity, "propensity", func() (any, error) {
		return &PropensityReport{Rows: propensityRows()}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*PropensityReport), nil
}

// Displayer is implemented by every report.
type Displayer interface {
	Display() *database.Table
}

// ByName returns the report called name ("funnel", "utilization", or
// "propensity").
func (s *Service) ByName(ctx context.Context, name string) (Displayer, error) {
	switch name {
	case "funnel":
		return s.Funnel(ctx)
	case "utilization":
		return s.Utilization(ctx)
	case "propensity":
		return s.Propensity(ctx)
	default:
		return nil, fmt.Errorf("unknown report %q", name)
	}
}

// Cached reports whether the named report is already memoized.
func (s *Service) Cached(name string) bool {
	return s.memo.Contains("report:" + name)
}

// Warm builds every report once. The first error is returned after all
// three have been attempted.
func (s *Service) Warm(ctx context.Context) error {
	var first error
	for _, name := range Names {
		if _, err := s.ByName(ctx, name); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Clear drops every memoized report.
func (s *Service) Clear() {
	s.memo.Clear()
}

// Stats returns the report memo statistics.
func (s *Service) Stats() cache.Stats {
	return s.memo.GetStats()
}

func (s *Service) build(ctx context.Context, key, name string, fn func() (any, error)) (any, error) {
	v, cached, err := s.memo.Do(key, func() (any, error) {
		r, err := fn()
		switch {
		case err != nil:
			metrics.ReportBuilds.WithLabelValues(name, "error").Inc()
		case isEmpty(r):
			metrics.ReportBuilds.WithLabelValues(name, "empty").Inc()
		default:
			metrics.ReportBuilds.WithLabelValues(name, "ok").Inc()
		}
		return r, err
	})
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("report", name).Msg("Report build failed")
		return nil, err
	}
	if !cached {
		logging.Ctx(ctx).Debug().Str("report", name).Msg("Report built")
	}
	return v, nil
}

func isEmpty(r any) bool {
	switch x := r.(type) {
	case *FunnelReport:
		return x.Empty()
	case *UtilizationReport:
		return x.Empty()
	default:
		return false
	}
}
