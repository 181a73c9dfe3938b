// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package database

import (
	"errors"
	"fmt"
	"io"

	"github.com/tomtom215/deskintel/internal/logging"
)

// Kind classifies a DataAccessError.
type Kind int

const (
	// KindConfiguration means credentials are missing or the driver is unknown.
	KindConfiguration Kind = iota + 1

	// KindConnection means the handle could not be constructed or reached.
	KindConnection

	// KindQuery means a statement failed against a live handle.
	KindQuery
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindConnection:
		return "connection"
	case KindQuery:
		return "query"
	default:
		return "unknown"
	}
}

var (
	// ErrMissingCredentials is wrapped by the configuration error returned
	// when any of DB_USER, DB_PASSWORD, DB_HOST, DB_NAME is empty.
	ErrMissingCredentials = errors.New("database credentials not found")

	// ErrUnsupportedDriver is wrapped when DB_DRIVER names no registered driver.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrProviderClosed is wrapped when Get runs after Close.
	ErrProviderClosed = errors.New("database provider closed")
)

// User-facing messages, shown verbatim on the dashboard.
const (
	MessageMissingCredentials = "Database credentials not found. Check your .env file."
	messageConnectPrefix      = "Error connecting to database: "
	messageQueryPrefix        = "Error running query: "
)

// DataAccessError is the single error type surfaced by the connection
// provider and the query executor.
type DataAccessError struct {
	Kind Kind

	// Op names the failing step: "credentials", "open", "ping", "query".
	Op string

	// Message is safe to show to dashboard users.
	Message string

	Err error
}

func (e *DataAccessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Kind, e.Op)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func configurationError(op, message string, err error) *DataAccessError {
	return &DataAccessError{Kind: KindConfiguration, Op: op, Message: message, Err: err}
}

func connectionError(op string, err error) *DataAccessError {
	return &DataAccessError{Kind: KindConnection, Op: op, Message: messageConnectPrefix + err.Error(), Err: err}
}

func queryError(err error) *DataAccessError {
	return &DataAccessError{Kind: KindQuery, Op: "query", Message: messageQueryPrefix + err.Error(), Err: err}
}

// IsKind reports whether err is a DataAccessError of kind k.
func IsKind(err error, k Kind) bool {
	var dae *DataAccessError
	return errors.As(err, &dae) && dae.Kind == k
}

// closeWithLog closes a resource and logs a failure. Used on every exit
// path of a query where the close error is not actionable.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and ignores the error.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
