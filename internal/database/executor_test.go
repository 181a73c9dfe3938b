// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestExecutorNoHandleReturnsEmptyTable(t *testing.T) {
	src := &staticSource{err: &DataAccessError{Kind: KindConfiguration, Message: MessageMissingCredentials}}
	e := newTestExecutor(t, src, ExecutorOptions{})

	queries := []string{"SELECT 1", "SELECT * FROM growth_funnel_mart", ""}
	for _, q := range queries {
		tbl, err := e.Run(context.Background(), q)
		if err != nil {
			t.Fatalf("Run(%q) error = %v, want nil", q, err)
		}
		if tbl.Len() != 0 || len(tbl.Columns) != 0 {
			t.Errorf("Run(%q) = %d rows %d cols, want empty", q, tbl.Len(), len(tbl.Columns))
		}
	}
}

func TestExecutorRunsAndMaterializes(t *testing.T) {
	db := openMemoryDB(t)
	mustExec(t, db,
		"CREATE TABLE t (name VARCHAR, qty INTEGER, price DOUBLE)",
		"INSERT INTO t VALUES ('a', 1, 1.5), ('b', NULL, 2.25)",
	)
	e := newTestExecutor(t, &staticSource{handle: NewHandle(db, "duckdb")}, ExecutorOptions{})

	tbl, err := e.Run(context.Background(), "SELECT name, qty, price FROM t ORDER BY name")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(tbl.Columns) != 3 || tbl.Columns[0] != "name" || tbl.Columns[2] != "price" {
		t.Fatalf("Columns = %v", tbl.Columns)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tbl.Len())
	}
	if v, _ := tbl.Value(0, "name"); v != "a" {
		t.Errorf("name[0] = %v (%T), want a", v, v)
	}
	if v, _ := tbl.Value(0, "qty"); v != int64(1) {
		t.Errorf("qty[0] = %v (%T), want int64 1", v, v)
	}
	if v, _ := tbl.Value(1, "qty"); v != nil {
		t.Errorf("qty[1] = %v, want nil", v)
	}
	if v, _ := tbl.Value(1, "price"); v != 2.25 {
		t.Errorf("price[1] = %v (%T), want 2.25", v, v)
	}
}

func TestExecutorCachesByExactText(t *testing.T) {
	db := openMemoryDB(t)
	mustExec(t, db,
		"CREATE TABLE t (v INTEGER)",
		"INSERT INTO t VALUES (1), (2), (3)",
	)
	e := newTestExecutor(t, &staticSource{handle: NewHandle(db, "duckdb")}, ExecutorOptions{})
	ctx := context.Background()
	query := "SELECT v FROM t"

	first, err := e.Run(ctx, query)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The table is gone, so anything not served from the memo would fail.
	mustExec(t, db, "DROP TABLE t")

	second, err := e.Run(ctx, query)
	if err != nil {
		t.Fatalf("cached Run() error = %v", err)
	}
	if second != first {
		t.Error("Expected the memoized table to be returned")
	}

	if _, err := e.Run(ctx, query+" "); err == nil {
		t.Error("Expected distinct text to miss the memo and hit the database")
	}
}

func TestExecutorQueryErrorsPropagateAndAreNotCached(t *testing.T) {
	db := openMemoryDB(t)
	e := newTestExecutor(t, &staticSource{handle: NewHandle(db, "duckdb")}, ExecutorOptions{})
	ctx := context.Background()
	query := "SELECT v FROM later"

	_, err := e.Run(ctx, query)
	if !IsKind(err, KindQuery) {
		t.Fatalf("Expected query error, got %v", err)
	}
	var dae *DataAccessError
	if !errors.As(err, &dae) || dae.Op != "query" {
		t.Errorf("Expected Op query, got %+v", dae)
	}

	mustExec(t, db, "CREATE TABLE later (v INTEGER)", "INSERT INTO later VALUES (7)")

	tbl, err := e.Run(ctx, query)
	if err != nil {
		t.Fatalf("retry Run() error = %v", err)
	}
	if v, _ := tbl.Value(0, "v"); v != int64(7) {
		t.Errorf("v = %v, want 7", v)
	}
}

func TestExecutorSingleFlight(t *testing.T) {
	db := openMemoryDB(t)
	mustExec(t, db, "CREATE TABLE t (v INTEGER)", "INSERT INTO t VALUES (1)")
	src := &staticSource{handle: NewHandle(db, "duckdb")}
	e := newTestExecutor(t, src, ExecutorOptions{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.Run(context.Background(), "SELECT v FROM t"); err != nil {
				t.Errorf("Run() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := src.calls.Load(); got != 1 {
		t.Errorf("Expected the handle to be fetched once, got %d", got)
	}
	if stats := e.Stats(); stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}
}

func TestExecutorClear(t *testing.T) {
	db := openMemoryDB(t)
	mustExec(t, db, "CREATE TABLE t (v INTEGER)", "INSERT INTO t VALUES (1)")
	src := &staticSource{handle: NewHandle(db, "duckdb")}
	e := newTestExecutor(t, src, ExecutorOptions{})
	ctx := context.Background()

	if _, err := e.Run(ctx, "SELECT v FROM t"); err != nil {
		t.Fatal(err)
	}
	mustExec(t, db, "INSERT INTO t VALUES (2)")
	e.Clear()

	tbl, err := e.Run(ctx, "SELECT v FROM t")
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Expected fresh result with 2 rows after Clear, got %d", tbl.Len())
	}
}

func TestExecutorBreakerOpens(t *testing.T) {
	db := openMemoryDB(t)
	e := newTestExecutor(t, &staticSource{handle: NewHandle(db, "duckdb")}, ExecutorOptions{
		Breaker: &BreakerOptions{
			Name:                "test-breaker",
			MaxRequests:         1,
			Timeout:             time.Hour,
			ConsecutiveFailures: 2,
		},
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := e.Run(ctx, "SELECT * FROM nowhere"); !IsKind(err, KindQuery) {
			t.Fatalf("attempt %d: expected query error, got %v", i, err)
		}
	}

	_, err := e.Run(ctx, "SELECT 1")
	if !IsKind(err, KindQuery) {
		t.Fatalf("Expected query error while open, got %v", err)
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected open-state error, got %v", err)
	}
	if e.BreakerState() != "open" {
		t.Errorf("BreakerState() = %q, want open", e.BreakerState())
	}
}

func TestExecutorQueryTimeout(t *testing.T) {
	db := openMemoryDB(t)
	e := newTestExecutor(t, &staticSource{handle: NewHandle(db, "duckdb")}, ExecutorOptions{QueryTimeout: time.Nanosecond})

	time.Sleep(time.Millisecond)
	if _, err := e.Run(context.Background(), "SELECT 1"); !IsKind(err, KindQuery) {
		t.Errorf("Expected timed out query to fail with a query error, got %v", err)
	}
}

func TestExecutorBreakerDisabledState(t *testing.T) {
	e := newTestExecutor(t, &staticSource{}, ExecutorOptions{})
	if e.BreakerState() != "disabled" {
		t.Errorf("BreakerState() = %q, want disabled", e.BreakerState())
	}
}
