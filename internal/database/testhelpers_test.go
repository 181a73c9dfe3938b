// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package database

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tomtom215/deskintel/internal/cache"
)

// staticSource hands out a fixed handle or error and counts calls.
type staticSource struct {
	handle *Handle
	err    error
	calls  atomic.Int32
}

func (s *staticSource) Get(context.Context) (*Handle, error) {
	s.calls.Add(1)
	return s.handle, s.err
}

type recordingReporter struct {
	mu     sync.Mutex
	errors []*DataAccessError
}

func (r *recordingReporter) ReportError(err *DataAccessError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errors)
}

// openMemoryDB opens an in-memory DuckDB and closes it with the test.
func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("Failed to open duckdb: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustExec(t *testing.T, db *sql.DB, stmts ...string) {
	t.Helper()
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
}

func newTestExecutor(t *testing.T, src HandleSource, opts ExecutorOptions) *Executor {
	t.Helper()
	return NewExecutor(src, cache.NewMemo[*Table](t.Name(), 0), opts)
}

var validCreds = Credentials{User: "analyst", Password: "pw", Host: "localhost", Name: ":memory:"}
