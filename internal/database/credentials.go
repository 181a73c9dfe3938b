// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package database

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/deskintel/internal/validation"
)

// Credentials identify the reporting database. All four fields must be
// non-empty before a handle is built, whatever the driver.
type Credentials struct {
	User     string `validate:"required" label:"DB_USER"`
	Password string `validate:"required" label:"DB_PASSWORD"`
	Host     string `validate:"required" label:"DB_HOST"`
	Name     string `validate:"required" label:"DB_NAME"`
}

// CredentialSource returns the current credentials. The provider calls it
// once, on first use.
type CredentialSource func() Credentials

// StaticCredentials returns a CredentialSource that always yields c.
func StaticCredentials(c Credentials) CredentialSource {
	return func() Credentials { return c }
}

// Validate returns an error wrapping ErrMissingCredentials that names every
// empty field, or nil.
func (c Credentials) Validate() error {
	if verr := validation.ValidateStruct(&c); verr != nil {
		return fmt.Errorf("%w: missing %s", ErrMissingCredentials, strings.Join(verr.Fields(), ", "))
	}
	return nil
}

// ConnectionURL returns <scheme>://<user>:<password>@<host>/<name>.
// User and password are percent-encoded.
func (c Credentials) ConnectionURL(scheme string) *url.URL {
	return &url.URL{
		Scheme: scheme,
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host,
		Path:   "/" + c.Name,
	}
}

// ConnectionString is ConnectionURL rendered as a string.
func (c Credentials) ConnectionString(scheme string) string {
	return c.ConnectionURL(scheme).String()
}

// Redacted is ConnectionString with the password masked, for logs.
func (c Credentials) Redacted(scheme string) string {
	return c.ConnectionURL(scheme).Redacted()
}
