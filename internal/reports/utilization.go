// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package reports

import (
	"fmt"

	"github.com/tomtom215/deskintel/internal/database"
)

// UtilizationHeaders are the display headers, in column order.
var UtilizationHeaders = []string{"Day of Week", "Segment", "Desk Bookings", "Room Bookings"}

// UtilizationRow is one (weekday, segment) bucket.
type UtilizationRow struct {
	DayOfWeek    *string `json:"day_of_week"` // nil for codes outside 1..7
	Segment      string  `json:"segment"`
	DeskBookings float64 `json:"desk_bookings"`
	RoomBookings float64 `json:"room_bookings"`
}

// UtilizationReport is the utilization query result. Values are shown as
// returned, so Display only renames the columns.
type UtilizationReport struct {
	Numeric *database.Table  `json:"-"`
	Rows    []UtilizationRow `json:"rows"`
}

// Empty reports whether the report has no rows.
func (r *UtilizationReport) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// Display returns the result under display headers.
func (r *UtilizationReport) Display() *database.Table {
	if r.Numeric == nil || r.Numeric.Empty() {
		return database.NewTable(UtilizationHeaders, nil)
	}
	return database.NewTable(UtilizationHeaders, r.Numeric.Rows)
}

func buildUtilization(tbl *database.Table) *UtilizationReport {
	out := &UtilizationReport{Numeric: tbl, Rows: make([]UtilizationRow, 0, tbl.Len())}
	for i := 0; i < tbl.Len(); i++ {
		row := UtilizationRow{
			Segment:      stringCell(tbl, i, colSegment),
			DeskBookings: floatCell(tbl, i, colDeskBookings),
			RoomBookings: floatCell(tbl, i, colRoomBookings),
		}
		if v, ok := tbl.Value(i, colDayOfWeek); ok && v != nil {
			day := fmt.Sprint(v)
			row.DayOfWeek = &day
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func stringCell(tbl *database.Table, i int, col string) string {
	v, ok := tbl.Value(i, col)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func floatCell(tbl *database.Table, i int, col string) float64 {
	v, _ := tbl.Value(i, col)
	f, _ := database.AsFloat(v)
	return f
}
