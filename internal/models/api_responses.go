// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

// Package models defines the JSON payloads served by the HTTP API.
package models

import (
	"time"

	"github.com/tomtom215/deskintel/internal/cache"
)

// APIResponse is the envelope for every API response.
//
// Status is "success" or "error". On error, Error is set and Data is null.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "DATA_ACCESS_ERROR",
//	    "message": "Error running query: ..."
//	  },
//	  "metadata": {"timestamp": "2026-10-14T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing. QueryTimeMS is 0 and Cached is true
// when the report came from the memo.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is a machine readable code plus a message safe to show users.
//
// Codes in use:
//   - VALIDATION_ERROR: unknown report name
//   - DATA_ACCESS_ERROR: a report query failed
//   - SERVICE_UNAVAILABLE: database handle absent on the readiness probe
//   - METHOD_NOT_ALLOWED
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ReportData is a report rendered as its display table plus, for the funnel
// and utilization reports, the typed rows behind it.
type ReportData struct {
	Report  string          `json:"report"`
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
	Count   int             `json:"count"`
	Typed   interface{}     `json:"typed,omitempty"`
}

// HealthStatus is the readiness probe payload.
type HealthStatus struct {
	Status            string  `json:"status"` // "healthy" or "degraded"
	Version           string  `json:"version"`
	Driver            string  `json:"driver"`
	DatabaseConnected bool    `json:"database_connected"`
	DatabaseError     string  `json:"database_error,omitempty"`
	Breaker           string  `json:"breaker"`
	Uptime            float64 `json:"uptime_seconds"`
}

// CacheStats reports both memo layers.
type CacheStats struct {
	Queries cache.Stats `json:"queries"`
	Reports cache.Stats `json:"reports"`
}

// CacheClearResult is returned after an operator clears the memos.
type CacheClearResult struct {
	QueriesCleared int64 `json:"queries_cleared"`
	ReportsCleared int64 `json:"reports_cleared"`
}
