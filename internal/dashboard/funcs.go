// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package dashboard

import (
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"
)

var boldRun = regexp.MustCompile(`\*\*(.+?)\*\*`)

func templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"cell":     formatCell,
		"emphasis": emphasis,
		"first": func(i int) bool {
			return i == 0
		},
	}
}

// formatCell renders one table value. NULL renders as an empty cell.
func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

// emphasis escapes s and turns **text** runs into <strong>text</strong>.
func emphasis(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	// Asterisks survive escaping unchanged.
	out := boldRun.ReplaceAllString(escaped, "<strong>$1</strong>")
	return template.HTML(strings.TrimSpace(out)) //nolint:gosec // input escaped above
}
