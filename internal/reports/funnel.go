// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package reports

import (
	"sort"

	"github.com/tomtom215/deskintel/internal/database"
)

// Funnel display headers, in column order.
var FunnelHeaders = []string{
	"company_size",
	"Total Leads",
	"Total Customers",
	"Total Revenue",
	"Conversion Rate (%)",
}

// FunnelRow is one company-size segment of the growth funnel.
type FunnelRow struct {
	CompanySize    string   `json:"company_size"`
	TotalLeads     float64  `json:"total_leads"`
	TotalCustomers float64  `json:"total_customers"`
	TotalRevenue   float64  `json:"total_revenue"`
	ConversionRate *float64 `json:"conversion_rate"` // nil when a segment has no leads
}

// FunnelReport holds the numeric funnel table and the rows parsed from it.
// Display derives the formatted table without touching either.
type FunnelReport struct {
	Numeric *database.Table `json:"-"`
	Rows    []FunnelRow     `json:"rows"`
}

// Empty reports whether the funnel has no rows.
func (r *FunnelReport) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// Display returns a new table with revenue rendered as currency and the
// conversion rate as a percentage. A NULL rate renders as "".
func (r *FunnelReport) Display() *database.Table {
	rows := make([][]interface{}, 0, len(r.Rows))
	for i, fr := range r.Rows {
		rate := ""
		if fr.ConversionRate != nil {
			rate = FormatPercent(*fr.ConversionRate)
		}
		rows = append(rows, []interface{}{
			fr.CompanySize,
			r.rawCell(i, colTotalLeads, fr.TotalLeads),
			r.rawCell(i, colTotalCustomers, fr.TotalCustomers),
			FormatCurrency(fr.TotalRevenue),
			rate,
		})
	}
	return database.NewTable(FunnelHeaders, rows)
}

// rawCell keeps counts exactly as the database returned them so integral
// sums stay integral in the display.
func (r *FunnelReport) rawCell(i int, col string, fallback float64) interface{} {
	if r.Numeric != nil {
		if v, ok := r.Numeric.Value(i, col); ok && v != nil {
			return v
		}
	}
	return fallback
}

// buildFunnel parses the funnel query result. Rows with a NULL rate are
// moved after every non-NULL rate, keeping relative order, because engines
// disagree on where DESC puts NULLs.
func buildFunnel(tbl *database.Table) *FunnelReport {
	if tbl.Empty() {
		return &FunnelReport{Numeric: tbl, Rows: []FunnelRow{}}
	}

	type indexed struct {
		row FunnelRow
		raw []interface{}
	}
	parsed := make([]indexed, 0, tbl.Len())
	for i := range tbl.Rows {
		fr := FunnelRow{
			CompanySize:    stringCell(tbl, i, colCompanySize),
			TotalLeads:     floatCell(tbl, i, colTotalLeads),
			TotalCustomers: floatCell(tbl, i, colTotalCustomers),
			TotalRevenue:   floatCell(tbl, i, colTotalRevenue),
		}
		if v, ok := tbl.Value(i, colConversionRate); ok {
			if f, ok := database.AsFloat(v); ok {
				fr.ConversionRate = &f
			}
		}
		parsed = append(parsed, indexed{row: fr, raw: tbl.Rows[i]})
	}

	sort.SliceStable(parsed, func(a, b int) bool {
		return parsed[a].row.ConversionRate != nil && parsed[b].row.ConversionRate == nil
	})

	out := &FunnelReport{Rows: make([]FunnelRow, len(parsed))}
	raw := make([][]interface{}, len(parsed))
	for i, p := range parsed {
		out.Rows[i] = p.row
		raw[i] = p.raw
	}
	out.Numeric = database.NewTable(tbl.Columns, raw)
	return out
}
