// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/deskintel/internal/models"
)

// HealthLive returns 200 while the process is up, whatever the database
// state.
//
// @Summary Liveness probe
// @Description Returns 200 OK while the process is alive, regardless of the database.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse "Service is alive"
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]string{"status": "alive"}, models.Metadata{})
}

// HealthReady pings the database handle. Without a usable handle it
// answers 503 with a degraded HealthStatus.
//
// The first readiness probe may be what constructs the handle.
//
// @Summary Readiness probe
// @Description Pings the database handle. Returns 503 when no usable handle exists.
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Service is ready"
// @Failure 503 {object} models.APIResponse{data=models.HealthStatus} "Service is not ready"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	health := models.HealthStatus{
		Status:  "healthy",
		Version: h.version,
		Driver:  h.driver,
		Breaker: "disabled",
		Uptime:  time.Since(h.startTime).Seconds(),
	}
	if h.queries != nil {
		health.Breaker = h.queries.BreakerState()
	}

	if h.db == nil {
		health.Status = "degraded"
		health.DatabaseError = "database not configured"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), h.pingTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			health.Status = "degraded"
			health.DatabaseError = err.Error()
		} else {
			health.DatabaseConnected = true
		}
	}

	status := http.StatusOK
	if !health.DatabaseConnected {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
