// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package reports

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders v as $ with thousands separators and 2 decimals:
// 95725.42 -> "$95,725.42". Rounding matches %.2f.
func FormatCurrency(v float64) string {
	return dollars(v, 2)
}

// FormatWholeDollars renders v as $ with thousands separators and no
// decimals: 10636.16 -> "$10,636".
func FormatWholeDollars(v float64) string {
	return dollars(v, 0)
}

// FormatPercent renders v with 2 decimals and a % sign: 35.8974 -> "35.90%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// dollars rounds once with strconv, then groups the integer part.
func dollars(v float64, decimals int) string {
	digits := strconv.FormatFloat(v, 'f', decimals, 64)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		digits = digits[1:]
		if strings.Trim(digits, "0.") != "" {
			sign = "-"
		}
	}
	whole, frac, hasFrac := strings.Cut(digits, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + "$" + digits
	}
	out := sign + "$" + humanize.Comma(n)
	if hasFrac {
		out += "." + frac
	}
	return out
}
