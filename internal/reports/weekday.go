// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package reports

import "time"

type weekday struct {
	code int
	name string
}

// weekdays follows the mart's day_of_week encoding, 1 = Sunday.
var weekdays = []weekday{
	{1, time.Sunday.String()},
	{2, time.Monday.String()},
	{3, time.Tuesday.String()},
	{4, time.Wednesday.String()},
	{5, time.Thursday.String()},
	{6, time.Friday.String()},
	{7, time.Saturday.String()},
}

// WeekdayName returns the day name for a day_of_week code. ok is false
// outside 1..7.
func WeekdayName(code int) (name string, ok bool) {
	if code < 1 || code > len(weekdays) {
		return "", false
	}
	return weekdays[code-1].name, true
}
