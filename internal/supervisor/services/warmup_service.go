// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package services

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/deskintel/internal/logging"
)

// Warmer is implemented by *reports.Service.
type Warmer interface {
	Warm(ctx context.Context) error
}

// WarmupService builds every report once at startup so the first page load
// is served from the memo. It runs exactly once: success and failure both
// end with suture.ErrDoNotRestart, because a failed query is retried on the
// next page load anyway and the handle is never rebuilt.
type WarmupService struct {
	warmer  Warmer
	timeout time.Duration
}

// NewWarmupService returns a service whose Warm call gets a context with
// the given timeout. A non-positive timeout means 30s. Report builds detach
// from that context, so the executor query timeout is what bounds a slow
// database.
func NewWarmupService(warmer Warmer, timeout time.Duration) *WarmupService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WarmupService{warmer: warmer, timeout: timeout}
}

// Serve implements suture.Service.
func (s *WarmupService) Serve(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.warmer.Warm(ctx); err != nil {
		logging.Warn().Err(err).Dur("duration", time.Since(start)).Msg("Report warm-up failed")
		return suture.ErrDoNotRestart
	}
	logging.Info().Dur("duration", time.Since(start)).Msg("Report caches warmed")
	return suture.ErrDoNotRestart
}

// String names the service in supervisor events.
func (s *WarmupService) String() string {
	return "report-warmup"
}
