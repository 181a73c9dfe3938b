// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

/*
Package main is the entry point for the Deskintel server.

Deskintel is a read-only analytics dashboard for hybrid workplace data. It
reads two pre-aggregated marts from a SQL database and presents a growth
funnel by company size, office utilization by weekday and segment, and a
fixed table of adoption odds ratios.

# Commands

	deskintel            # same as serve
	deskintel serve      # dashboard on /, JSON API on /api/v1, metrics on /metrics,
	                     # OpenAPI UI on /swagger/index.html
	deskintel report     # print the three tables to the terminal
	deskintel version

# Application Architecture

	RootSupervisor ("deskintel")
	├── DataSupervisor ("data-layer")
	│   └── Report warm-up (runs once, CACHE_WARM_ON_STARTUP)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

The database handle is built lazily on the first report request and never
rebuilt. Missing credentials or a failed connection appear as a notice on
the dashboard; the process keeps running.

# Configuration

Koanf v2 with layered sources (highest priority wins):

	Environment variables > .env file > config.yaml > Defaults

Required:

	DB_USER, DB_PASSWORD, DB_HOST, DB_NAME

Common:

	DB_DRIVER=mysql              # mysql, postgres, duckdb, sqlite
	HTTP_PORT=8501
	CACHE_QUERY_TTL=0            # 0 keeps results for the process lifetime
	BREAKER_ENABLED=true
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for SHUTDOWN_TIMEOUT before the pool is closed.
*/
package main
