// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package reports

import "github.com/tomtom215/deskintel/internal/database"

// PropensityHeaders are the propensity table headers, in column order.
var PropensityHeaders = []string{"Segment", "Odds Ratio", "Likelihood Comparison (vs. Enterprise)"}

// PropensityRow is one segment's odds of closing relative to Enterprise.
type PropensityRow struct {
	Segment    string  `json:"segment"`
	OddsRatio  float64 `json:"odds_ratio"`
	Comparison string  `json:"comparison"`
}

// PropensityReport carries the logistic regression odds ratios. The values
// come from an offline model run and do not depend on the database.
type PropensityReport struct {
	Rows []PropensityRow `json:"rows"`
}

func propensityRows() []PropensityRow {
	return []PropensityRow{
		{Segment: "Enterprise (Baseline)", OddsRatio: 1.0, Comparison: "1.0x (Baseline)"},
		{Segment: "Mid-Market", OddsRatio: 0.277, Comparison: "72.3% Lower"},
		{Segment: "SMB", OddsRatio: 0.189, Comparison: "81.1% Lower"},
	}
}

// Display returns the propensity table.
func (r *PropensityReport) Display() *database.Table {
	rows := make([][]interface{}, len(r.Rows))
	for i, pr := range r.Rows {
		rows[i] = []interface{}{pr.Segment, pr.OddsRatio, pr.Comparison}
	}
	return database.NewTable(PropensityHeaders, rows)
}
