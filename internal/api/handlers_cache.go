// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package api

import (
	"net/http"

	"github.com/tomtom215/deskintel/internal/logging"
	"github.com/tomtom215/deskintel/internal/models"
)

// CacheStats reports hit and miss counters for both memo layers.
//
// @Summary Memo statistics
// @Tags Cache
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CacheStats} "Counters for the query and report memos"
// @Router /cache/stats [get]
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, models.CacheStats{
		Queries: h.queries.Stats(),
		Reports: h.reports.Stats(),
	}, models.Metadata{})
}

// CacheClear drops every memoized query result and report. The database
// handle is never reset, so a failed connection stays failed until restart.
// Reports still computing when the memos are cleared are returned to their
// callers but not stored.
//
// @Summary Clear memos
// @Description Drops every memoized query result and report. The next request reruns the query.
// @Tags Cache
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CacheClearResult} "Number of entries dropped"
// @Router /cache/clear [post]
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	result := models.CacheClearResult{
		QueriesCleared: h.queries.Stats().TotalKeys,
		ReportsCleared: h.reports.Stats().TotalKeys,
	}
	h.reports.Clear()
	h.queries.Clear()

	logging.Ctx(r.Context()).Info().
		Int64("queries", result.QueriesCleared).
		Int64("reports", result.ReportsCleared).
		Msg("Caches cleared")

	respondSuccess(w, result, models.Metadata{})
}
