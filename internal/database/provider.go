// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

/*
provider.go - Connection Provider

The Provider builds the single database handle used for the whole process
lifetime and remembers the outcome of that one attempt.

Construction (first Get only):
  - Read credentials from the CredentialSource
  - Any empty field: configuration error, reported, no handle
  - Resolve the driver, build the DSN, sql.Open, size the pool
  - Ping within ConnectTimeout: failure is a connection error, reported

The outcome is memoized behind a sync.Once, including failures. A transient
outage during the first Get therefore disables data loading until restart;
there is no reconnection loop.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/deskintel/internal/logging"
	"github.com/tomtom215/deskintel/internal/metrics"
)

// ErrorReporter receives configuration and connection failures so they can
// be shown to dashboard users.
type ErrorReporter interface {
	ReportError(err *DataAccessError)
}

// Opener opens a *sql.DB. sql.Open is used when nil.
type Opener func(driverName, dsn string) (*sql.DB, error)

// ProviderOptions configures a Provider.
type ProviderOptions struct {
	// Driver is the DB_DRIVER value. Default: mysql
	Driver string

	Credentials CredentialSource

	// ConnectTimeout bounds the initial ping. Default: 10s
	ConnectTimeout time.Duration

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Reporter is notified of a failed construction. Optional.
	Reporter ErrorReporter

	// Open overrides sql.Open, mainly for tests.
	Open Opener
}

// Handle is the live connection pool plus what was used to build it.
type Handle struct {
	db     *sql.DB
	driver string
	url    string
}

// NewHandle wraps an already opened pool. Tests use it to feed executors
// an in-memory database.
func NewHandle(db *sql.DB, driver string) *Handle {
	return &Handle{db: db, driver: driver, url: driver}
}

// DB returns the underlying pool.
func (h *Handle) DB() *sql.DB { return h.db }

// Driver returns the DB_DRIVER name.
func (h *Handle) Driver() string { return h.driver }

// URL returns the connection URL with the password masked.
func (h *Handle) URL() string { return h.url }

// Provider lazily constructs and memoizes the database handle.
type Provider struct {
	opts ProviderOptions

	once     sync.Once
	handle   *Handle
	err      *DataAccessError
	attempts atomic.Int32

	closeOnce sync.Once
}

// NewProvider returns a Provider. Nothing is opened until the first Get.
func NewProvider(opts ProviderOptions) *Provider {
	if opts.Driver == "" {
		opts.Driver = "mysql"
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	if opts.Open == nil {
		opts.Open = sql.Open
	}
	if opts.Credentials == nil {
		opts.Credentials = StaticCredentials(Credentials{})
	}
	return &Provider{opts: opts}
}

// Get returns the handle, constructing it on the first call. Every later
// call, concurrent or not, returns the same handle or the same error.
// The returned error, when non-nil, is a *DataAccessError.
func (p *Provider) Get(ctx context.Context) (*Handle, error) {
	p.once.Do(func() {
		p.attempts.Add(1)
		p.handle, p.err = p.connect(context.WithoutCancel(ctx))
		p.record(ctx)
	})
	if p.err != nil {
		return nil, p.err
	}
	return p.handle, nil
}

// Attempts returns how many times construction ran. It is 0 or 1.
func (p *Provider) Attempts() int {
	return int(p.attempts.Load())
}

// Ping checks the memoized handle. It returns the construction failure if
// there is no handle.
func (p *Provider) Ping(ctx context.Context) error {
	h, err := p.Get(ctx)
	if err != nil {
		return err
	}
	return h.db.PingContext(ctx)
}

// Close releases the handle at process teardown. It waits for a
// construction in flight. A Provider closed before first use never connects;
// Get then fails with ErrProviderClosed.
func (p *Provider) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.once.Do(func() { p.err = connectionError("close", ErrProviderClosed) })
		if p.handle != nil {
			err = p.handle.db.Close()
			logging.Info().Str("driver", p.handle.driver).Msg("Database handle closed")
		}
	})
	return err
}

func (p *Provider) connect(ctx context.Context) (*Handle, *DataAccessError) {
	creds := p.opts.Credentials()
	if err := creds.Validate(); err != nil {
		return nil, configurationError("credentials", MessageMissingCredentials, err)
	}

	driver, err := LookupDriver(p.opts.Driver)
	if err != nil {
		return nil, configurationError("driver", err.Error(), err)
	}

	redacted := creds.Redacted(driver.Name)
	logging.Info().Str("driver", driver.Name).Str("url", redacted).Msg("Opening database handle")

	db, err := p.opts.Open(driver.SQLName, driver.DSN(creds))
	if err != nil {
		return nil, connectionError("open", err)
	}
	configurePool(db, p.opts)

	pingCtx, cancel := context.WithTimeout(ctx, p.opts.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		closeQuietly(db)
		return nil, connectionError("ping", err)
	}

	return &Handle{db: db, driver: driver.Name, url: redacted}, nil
}

func configurePool(db *sql.DB, opts ProviderOptions) {
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
}

func (p *Provider) record(ctx context.Context) {
	if p.err == nil {
		metrics.RecordConnectionAttempt("success")
		logging.Ctx(ctx).Info().Str("driver", p.handle.driver).Msg("Database handle ready")
		return
	}

	outcome := "connection_error"
	if p.err.Kind == KindConfiguration {
		outcome = "configuration_error"
	}
	metrics.RecordConnectionAttempt(outcome)

	event := logging.Ctx(ctx).Error().Str("kind", p.err.Kind.String()).Str("op", p.err.Op)
	if cause := errors.Unwrap(p.err); cause != nil {
		event = event.AnErr("cause", cause)
	}
	event.Msg(p.err.Message)

	if p.opts.Reporter != nil {
		p.opts.Reporter.ReportError(p.err)
	}
}
