// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

// Package main provides the Deskintel HTTP server
//
// Regenerate docs/ after changing any annotation:
//
//	swag init -g cmd/server/docs.go -o docs --parseInternal
//
// @title Deskintel API
// @version 1.0
// @description Read-only reports over the hybrid workplace growth funnel and office utilization marts
// @description
// @description ## Reports
// @description
// @description - **funnel**: leads, customers, revenue and conversion rate by company size
// @description - **utilization**: average office attendance by weekday and segment
// @description - **propensity**: fixed odds ratios for hybrid adoption
// @description
// @description Report results are memoized for the process lifetime unless `CACHE_QUERY_TTL` is set.
// @description `POST /cache/clear` drops them.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "DATA_ACCESS_ERROR",
// @description     "message": "Error running query: ..."
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-10-14T12:00:00Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/deskintel/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8501
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Reports
// @tag.description Funnel, utilization and propensity tables
//
// @tag.name Core
// @tag.description Liveness and readiness
//
// @tag.name Cache
// @tag.description Memo statistics and invalidation
package main
