// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/tomtom215/deskintel/internal/database"
	"github.com/tomtom215/deskintel/internal/reports"
)

func newReportCmd() *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the reports as terminal tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a := newApp(cfg)
			defer a.close()
			return printReports(cmd.Context(), cmd.OutOrStdout(), a, names)
		},
	}
	cmd.Flags().StringSliceVarP(&names, "report", "r", reports.Names, "Reports to print: propensity, funnel, utilization")
	return cmd
}

// printReports writes each named report, then any data access notices.
// A query error stops the output and is returned.
func printReports(ctx context.Context, w io.Writer, a *app, names []string) error {
	for _, name := range names {
		report, err := a.reports.ByName(ctx, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "== %s ==\n", name)
		fmt.Fprintln(w, renderTable(report.Display()))
		fmt.Fprintln(w)
	}

	for _, n := range a.notices.Notices() {
		fmt.Fprintf(w, "[%s] %s\n", n.Kind, n.Message)
	}
	return nil
}

func renderTable(t *database.Table) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true

	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	table.AddRow(header...)

	for _, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = terminalCell(v)
		}
		table.AddRow(cells...)
	}
	return table
}

// terminalCell renders NULL as an empty cell.
func terminalCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}
