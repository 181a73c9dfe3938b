// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/deskintel/internal/cache"
	"github.com/tomtom215/deskintel/internal/logging"
	"github.com/tomtom215/deskintel/internal/metrics"
)

// HandleSource yields the database handle. *Provider implements it.
type HandleSource interface {
	Get(ctx context.Context) (*Handle, error)
}

// ExecutorOptions configures an Executor.
type ExecutorOptions struct {
	// QueryTimeout bounds one query. Zero means no limit.
	QueryTimeout time.Duration

	// Breaker enables the circuit breaker when non-nil.
	Breaker *BreakerOptions
}

// Executor runs parameterless SQL and memoizes results by exact query text.
type Executor struct {
	handles      HandleSource
	memo         *cache.Memo[*Table]
	breaker      *queryBreaker
	queryTimeout time.Duration
}

// NewExecutor returns an Executor that stores results in memo.
func NewExecutor(handles HandleSource, memo *cache.Memo[*Table], opts ExecutorOptions) *Executor {
	e := &Executor{
		handles:      handles,
		memo:         memo,
		queryTimeout: opts.QueryTimeout,
	}
	if opts.Breaker != nil {
		e.breaker = newQueryBreaker(*opts.Breaker)
	}
	return e
}

// Run returns the result of query.
//
// Without a handle Run returns an empty table and a nil error; the reason
// has already been reported by the provider. With a handle the query runs
// on a dedicated session that is released on every exit path. Identical
// text is served from the memo without touching the database, and
// concurrent callers of the same text share one execution. A failed query
// returns a KindQuery *DataAccessError and is not memoized.
func (e *Executor) Run(ctx context.Context, query string) (*Table, error) {
	tbl, cached, err := e.memo.Do(query, func() (*Table, error) {
		// Shared by every waiter; one caller going away must not fail the rest.
		flightCtx := context.WithoutCancel(ctx)

		h, herr := e.handles.Get(flightCtx)
		if herr != nil || h == nil {
			return EmptyTable(), nil
		}
		return e.execute(flightCtx, h, query)
	})
	if err != nil {
		return nil, err
	}
	if cached {
		logging.Ctx(ctx).Debug().Int("rows", tbl.Len()).Msg("Query served from cache")
	}
	return tbl, nil
}

// Clear drops every memoized result. The handle is not touched.
func (e *Executor) Clear() {
	e.memo.Clear()
}

// Stats returns the result memo statistics.
func (e *Executor) Stats() cache.Stats {
	return e.memo.GetStats()
}

// BreakerState returns the circuit breaker state, or "disabled".
func (e *Executor) BreakerState() string {
	if e.breaker == nil {
		return "disabled"
	}
	return e.breaker.state().String()
}

func (e *Executor) execute(ctx context.Context, h *Handle, query string) (*Table, error) {
	if e.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.queryTimeout)
		defer cancel()
	}

	run := func() (*Table, error) {
		return runScoped(ctx, h.db, query)
	}

	start := time.Now()
	var tbl *Table
	var err error
	if e.breaker != nil {
		tbl, err = e.breaker.execute(run)
	} else {
		tbl, err = run()
	}
	metrics.RecordDBQuery(h.driver, time.Since(start), tbl.Len(), err)

	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("driver", h.driver).Msg("Query failed")
		return nil, queryError(err)
	}
	logging.Ctx(ctx).Debug().Str("driver", h.driver).Int("rows", tbl.Len()).Dur("took", time.Since(start)).Msg("Query executed")
	return tbl, nil
}

// runScoped acquires a session, runs query, and materializes every row.
// Rows and session are closed by defer, so a panic while scanning still
// returns the session to the pool.
func runScoped(ctx context.Context, db *sql.DB, query string) (*Table, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire session: %w", err)
	}
	defer closeWithLog(conn, "session")

	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	return materialize(rows)
}

func materialize(rows *sql.Rows) (*Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	numeric := make([]bool, len(columns))
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			numeric[i] = isNumericType(ct)
		}
	}

	out := [][]interface{}{}
	for rows.Next() {
		raw := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i := range raw {
			raw[i] = normalizeValue(raw[i], numeric[i])
		}
		out = append(out, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return NewTable(columns, out), nil
}
