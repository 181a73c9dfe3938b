// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package reports

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/deskintel/internal/cache"
	"github.com/tomtom215/deskintel/internal/database"
)

type fakeRunner struct {
	tables map[string]*database.Table
	err    error
	calls  atomic.Int32
}

func (f *fakeRunner) Run(_ context.Context, query string) (*database.Table, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.tables[query]; ok {
		return t, nil
	}
	return database.EmptyTable(), nil
}

type handleSource struct{ h *database.Handle }

func (s handleSource) Get(context.Context) (*database.Handle, error) { return s.h, nil }

func newService(t *testing.T, r Runner) *Service {
	t.Helper()
	return NewService(r, cache.NewMemo[any](t.Name(), 0))
}

// seededService runs the real queries against an in-memory DuckDB.
func seededService(t *testing.T) *Service {
	t.Helper()
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("Failed to open duckdb: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	stmts := []string{
		`CREATE TABLE growth_funnel_mart (company_size VARCHAR, total_leads DOUBLE, total_customers DOUBLE, total_revenue DOUBLE)`,
		`INSERT INTO growth_funnel_mart VALUES
			('Enterprise', 20, 7, 250000),
			('Enterprise', 19, 7, 250000),
			('Mid-Market', 50, 9, 95725.42),
			('SMB', 98, 13, 41000.5),
			('Startup', 0, 0, 0)`,
		`CREATE TABLE office_utilization_mart (day_of_week INTEGER, company_size VARCHAR, total_desk_bookings DOUBLE, total_room_bookings DOUBLE)`,
		`INSERT INTO office_utilization_mart VALUES
			(2, 'SMB', 10, 5),
			(2, 'SMB', 5, 1),
			(1, 'Enterprise', 40, 2),
			(7, 'Mid-Market', 3, 0),
			(9, 'SMB', 1, 1)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed %q: %v", stmt, err)
		}
	}

	exec := database.NewExecutor(handleSource{database.NewHandle(db, "duckdb")}, cache.NewMemo[*database.Table]("test_queries", 0), database.ExecutorOptions{})
	return newService(t, exec)
}

func TestFunnelAgainstDuckDB(t *testing.T) {
	svc := seededService(t)

	report, err := svc.Funnel(context.Background())
	if err != nil {
		t.Fatalf("Funnel() error = %v", err)
	}

	wantOrder := []string{"Enterprise", "Mid-Market", "SMB", "Startup"}
	if len(report.Rows) != len(wantOrder) {
		t.Fatalf("Expected %d rows, got %d", len(wantOrder), len(report.Rows))
	}
	for i, want := range wantOrder {
		if report.Rows[i].CompanySize != want {
			t.Errorf("row %d = %s, want %s", i, report.Rows[i].CompanySize, want)
		}
	}

	ent := report.Rows[0]
	if ent.TotalLeads != 39 || ent.TotalCustomers != 14 || ent.TotalRevenue != 500000 {
		t.Errorf("Enterprise sums = %+v", ent)
	}
	if ent.ConversionRate == nil || math.Abs(*ent.ConversionRate-35.897435) > 1e-4 {
		t.Errorf("Enterprise rate = %v", ent.ConversionRate)
	}

	startup := report.Rows[3]
	if startup.ConversionRate != nil {
		t.Errorf("Expected NULL rate for zero leads, got %v", *startup.ConversionRate)
	}

	display := report.Display()
	if strings.Join(display.Columns, "|") != strings.Join(FunnelHeaders, "|") {
		t.Errorf("display columns = %v", display.Columns)
	}
	if v, _ := display.Value(0, "Conversion Rate (%)"); v != "35.90%" {
		t.Errorf("Enterprise display rate = %v, want 35.90%%", v)
	}
	if v, _ := display.Value(1, "Total Revenue"); v != "$95,725.42" {
		t.Errorf("Mid-Market display revenue = %v, want $95,725.42", v)
	}
	if v, _ := display.Value(2, "Conversion Rate (%)"); v != "13.27%" {
		t.Errorf("SMB display rate = %v, want 13.27%%", v)
	}
	if v, _ := display.Value(3, "Conversion Rate (%)"); v != "" {
		t.Errorf("Startup display rate = %q, want blank", v)
	}

	// Numeric data survives formatting.
	if v, _ := report.Numeric.Value(1, "total_revenue"); v != 95725.42 {
		t.Errorf("numeric revenue = %v, want 95725.42", v)
	}
}

func TestUtilizationAgainstDuckDB(t *testing.T) {
	svc := seededService(t)

	report, err := svc.Utilization(context.Background())
	if err != nil {
		t.Fatalf("Utilization() error = %v", err)
	}

	type want struct {
		day  string
		seg  string
		desk float64
	}
	wants := []want{
		{"Sunday", "Enterprise", 40},
		{"Monday", "SMB", 15},
		{"Saturday", "Mid-Market", 3},
		{"", "SMB", 1},
	}
	if len(report.Rows) != len(wants) {
		t.Fatalf("Expected %d rows, got %d", len(wants), len(report.Rows))
	}
	for i, w := range wants {
		r := report.Rows[i]
		day := ""
		if r.DayOfWeek != nil {
			day = *r.DayOfWeek
		}
		if day != w.day || r.Segment != w.seg || r.DeskBookings != w.desk {
			t.Errorf("row %d = (%q, %s, %v), want (%q, %s, %v)", i, day, r.Segment, r.DeskBookings, w.day, w.seg, w.desk)
		}
	}

	display := report.Display()
	if display.Columns[0] != "Day of Week" || display.Columns[3] != "Room Bookings" {
		t.Errorf("display columns = %v", display.Columns)
	}
	if v, _ := display.Value(3, "Day of Week"); v != nil {
		t.Errorf("out of range day should be NULL, got %v", v)
	}
}

func TestReportsRunQueryAtMostOnce(t *testing.T) {
	runner := &fakeRunner{tables: map[string]*database.Table{
		FunnelQuery: database.NewTable(
			[]string{colCompanySize, colTotalLeads, colTotalCustomers, colTotalRevenue, colConversionRate},
			[][]interface{}{{"Enterprise", int64(39), int64(14), 500000.0, 35.8974}},
		),
	}}
	svc := newService(t, runner)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := svc.Funnel(ctx); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.Utilization(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if got := runner.calls.Load(); got != 2 {
		t.Errorf("Expected 2 query runs (one per report), got %d", got)
	}
}

func TestFunnelEmptyWithoutHandle(t *testing.T) {
	svc := newService(t, &fakeRunner{})

	report, err := svc.Funnel(context.Background())
	if err != nil {
		t.Fatalf("Funnel() error = %v", err)
	}
	if !report.Empty() {
		t.Error("Expected empty funnel")
	}
	if report.Display().Len() != 0 {
		t.Error("Expected empty display table")
	}
}

func TestReportErrorPropagates(t *testing.T) {
	qerr := &database.DataAccessError{Kind: database.KindQuery, Op: "query", Message: "Error running query: boom"}
	runner := &fakeRunner{err: qerr}
	svc := newService(t, runner)

	_, err := svc.Funnel(context.Background())
	if !database.IsKind(err, database.KindQuery) {
		t.Fatalf("Expected query error, got %v", err)
	}

	// Errors are not memoized; the next call runs again.
	_, _ = svc.Funnel(context.Background())
	if got := runner.calls.Load(); got != 2 {
		t.Errorf("Expected 2 runs after failures, got %d", got)
	}

	if _, err := svc.Utilization(context.Background()); !errors.Is(err, qerr) {
		t.Errorf("Expected utilization to return the same error, got %v", err)
	}
}

func TestPropensityIsStable(t *testing.T) {
	runner := &fakeRunner{err: errors.New("database is on fire")}
	svc := newService(t, runner)

	for i := 0; i < 3; i++ {
		svc.Clear()
		report, err := svc.Propensity(context.Background())
		if err != nil {
			t.Fatalf("Propensity() error = %v", err)
		}
		if len(report.Rows) != 3 {
			t.Fatalf("Expected 3 rows, got %d", len(report.Rows))
		}
		wantOdds := []float64{1.0, 0.277, 0.189}
		for j, w := range wantOdds {
			if report.Rows[j].OddsRatio != w {
				t.Errorf("odds[%d] = %v, want %v", j, report.Rows[j].OddsRatio, w)
			}
		}
		if report.Rows[1].Comparison != "72.3% Lower" {
			t.Errorf("Mid-Market comparison = %q", report.Rows[1].Comparison)
		}
	}
	if runner.calls.Load() != 0 {
		t.Error("Propensity must not touch the database")
	}

	display := (&PropensityReport{Rows: propensityRows()}).Display()
	if v, _ := display.Value(0, "Likelihood Comparison (vs. Enterprise)"); v != "1.0x (Baseline)" {
		t.Errorf("baseline comparison = %v", v)
	}
}

func TestByNameAndWarm(t *testing.T) {
	runner := &fakeRunner{}
	svc := newService(t, runner)
	ctx := context.Background()

	for _, name := range Names {
		r, err := svc.ByName(ctx, name)
		if err != nil || r == nil {
			t.Errorf("ByName(%q) = %v, %v", name, r, err)
		}
	}
	if _, err := svc.ByName(ctx, "revenue"); err == nil {
		t.Error("Expected unknown report error")
	}

	svc.Clear()
	if err := svc.Warm(ctx); err != nil {
		t.Errorf("Warm() error = %v", err)
	}
	if svc.Stats().TotalKeys != 3 {
		t.Errorf("Expected 3 memoized reports after Warm, got %d", svc.Stats().TotalKeys)
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) string
		in   float64
		want string
	}{
		{"currency", FormatCurrency, 95725.42, "$95,725.42"},
		{"currency small", FormatCurrency, 5, "$5.00"},
		{"currency millions", FormatCurrency, 1234567.891, "$1,234,567.89"},
		{"percent", FormatPercent, 35.8974, "35.90%"},
		{"percent zero", FormatPercent, 0, "0.00%"},
		{"currency rounds like percent", FormatCurrency, 999.995, "$999.99"},
		{"currency carries into thousands", FormatCurrency, 999.996, "$1,000.00"},
		{"currency negative", FormatCurrency, -1234.5, "-$1,234.50"},
		{"currency negative zero", FormatCurrency, -0.001, "$0.00"},
		{"whole dollars", FormatWholeDollars, 95725.42 / 9.0, "$10,636"},
		{"whole dollars grouping", FormatWholeDollars, 1234567.4, "$1,234,567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWeekdayName(t *testing.T) {
	want := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	for i, w := range want {
		got, ok := WeekdayName(i + 1)
		if !ok || got != w {
			t.Errorf("WeekdayName(%d) = %q, %v; want %q", i+1, got, ok, w)
		}
	}
	for _, code := range []int{0, 8, -1} {
		if _, ok := WeekdayName(code); ok {
			t.Errorf("WeekdayName(%d) should be undefined", code)
		}
	}
	for _, w := range want {
		if !strings.Contains(UtilizationQuery, "'"+w+"'") {
			t.Errorf("UtilizationQuery missing %s", w)
		}
	}
}

func TestFunnelQueryGuardsDivision(t *testing.T) {
	if !strings.Contains(FunnelQuery, "NULLIF(SUM(total_leads), 0)") {
		t.Error("FunnelQuery must guard the lead total with NULLIF")
	}
}
