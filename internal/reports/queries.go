// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package reports

import (
	"fmt"
	"strings"
)

// Result column aliases. They are plain snake_case so the same text runs
// unchanged on MySQL, Postgres, DuckDB, and SQLite; display headers are
// applied in Go.
const (
	colCompanySize    = "company_size"
	colTotalLeads     = "total_leads"
	colTotalCustomers = "total_customers"
	colTotalRevenue   = "total_revenue"
	colConversionRate = "conversion_rate"

	colDayOfWeek    = "day_of_week"
	colSegment      = "segment"
	colDeskBookings = "desk_bookings"
	colRoomBookings = "room_bookings"
)

// FunnelQuery aggregates growth_funnel_mart by company size. NULLIF turns
// a zero lead total into a NULL rate instead of a division error.
const FunnelQuery = `
SELECT
    company_size AS company_size,
    SUM(total_leads) AS total_leads,
    SUM(total_customers) AS total_customers,
    SUM(total_revenue) AS total_revenue,
    (SUM(total_customers) * 100.0) / NULLIF(SUM(total_leads), 0) AS conversion_rate
FROM
    growth_funnel_mart
GROUP BY 1
ORDER BY conversion_rate DESC
`

// UtilizationQuery aggregates office_utilization_mart by weekday and
// segment. Codes outside 1..7 map to NULL.
var UtilizationQuery = buildUtilizationQuery()

func buildUtilizationQuery() string {
	var b strings.Builder
	b.WriteString("\nSELECT\n    CASE day_of_week\n")
	for _, d := range weekdays {
		fmt.Fprintf(&b, "        WHEN %d THEN '%s'\n", d.code, d.name)
	}
	b.WriteString(`    END AS day_of_week,
    company_size AS segment,
    SUM(total_desk_bookings) AS desk_bookings,
    SUM(total_room_bookings) AS room_bookings
FROM
    office_utilization_mart
GROUP BY 1, 2
ORDER BY desk_bookings DESC
`)
	return b.String()
}
