// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestProviderMissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		missing string
	}{
		{"all missing", Credentials{}, "DB_USER, DB_PASSWORD, DB_HOST, DB_NAME"},
		{"password missing", Credentials{User: "u", Host: "h", Name: "n"}, "DB_PASSWORD"},
		{"name missing", Credentials{User: "u", Password: "p", Host: "h"}, "DB_NAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &recordingReporter{}
			opened := false
			p := NewProvider(ProviderOptions{
				Driver:      "mysql",
				Credentials: StaticCredentials(tt.creds),
				Reporter:    reporter,
				Open: func(string, string) (*sql.DB, error) {
					opened = true
					return nil, errors.New("should not open")
				},
			})

			h, err := p.Get(context.Background())
			if h != nil {
				t.Fatal("Expected no handle")
			}
			if !IsKind(err, KindConfiguration) {
				t.Fatalf("Expected configuration error, got %v", err)
			}
			if err.Error() != MessageMissingCredentials {
				t.Errorf("Error() = %q, want %q", err.Error(), MessageMissingCredentials)
			}
			if !errors.Is(err, ErrMissingCredentials) {
				t.Error("Expected error to wrap ErrMissingCredentials")
			}
			if !strings.Contains(errors.Unwrap(err).Error(), tt.missing) {
				t.Errorf("cause %q should list %s", errors.Unwrap(err), tt.missing)
			}
			if opened {
				t.Error("Expected no open attempt without credentials")
			}
			if reporter.count() != 1 {
				t.Errorf("Expected 1 report, got %d", reporter.count())
			}
		})
	}
}

func TestProviderUnsupportedDriver(t *testing.T) {
	p := NewProvider(ProviderOptions{Driver: "oracle", Credentials: StaticCredentials(validCreds)})

	_, err := p.Get(context.Background())
	if !IsKind(err, KindConfiguration) {
		t.Fatalf("Expected configuration error, got %v", err)
	}
	if !errors.Is(err, ErrUnsupportedDriver) {
		t.Error("Expected error to wrap ErrUnsupportedDriver")
	}
}

func TestProviderOpenFailure(t *testing.T) {
	reporter := &recordingReporter{}
	p := NewProvider(ProviderOptions{
		Driver:      "mysql",
		Credentials: StaticCredentials(validCreds),
		Reporter:    reporter,
		Open: func(string, string) (*sql.DB, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	})

	_, err := p.Get(context.Background())
	if !IsKind(err, KindConnection) {
		t.Fatalf("Expected connection error, got %v", err)
	}
	want := "Error connecting to database: dial tcp: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if reporter.count() != 1 {
		t.Errorf("Expected 1 report, got %d", reporter.count())
	}
}

func TestProviderPingFailure(t *testing.T) {
	creds := validCreds
	creds.Name = t.TempDir() + "/missing/dir/reports.duckdb"

	p := NewProvider(ProviderOptions{Driver: "duckdb", Credentials: StaticCredentials(creds)})

	_, err := p.Get(context.Background())
	if !IsKind(err, KindConnection) {
		t.Fatalf("Expected connection error, got %v", err)
	}
}

func TestProviderSuccess(t *testing.T) {
	p := NewProvider(ProviderOptions{Driver: "duckdb", Credentials: StaticCredentials(validCreds)})
	defer p.Close()

	h1, err := p.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	h2, err := p.Get(context.Background())
	if err != nil {
		t.Fatalf("second Get() error = %v", err)
	}
	if h1 != h2 {
		t.Error("Expected the same handle on every call")
	}
	if h1.Driver() != "duckdb" {
		t.Errorf("Driver() = %q, want duckdb", h1.Driver())
	}
	if strings.Contains(h1.URL(), "pw") {
		t.Errorf("URL() leaks password: %s", h1.URL())
	}
	if err := p.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestProviderAttemptsOnceUnderConcurrency(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
	}{
		{"failure is memoized", Credentials{}},
		{"success is memoized", validCreds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &recordingReporter{}
			p := NewProvider(ProviderOptions{
				Driver:      "duckdb",
				Credentials: StaticCredentials(tt.creds),
				Reporter:    reporter,
			})
			defer p.Close()

			const callers = 20
			var wg sync.WaitGroup
			handles := make([]*Handle, callers)
			errs := make([]error, callers)
			for i := 0; i < callers; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					handles[i], errs[i] = p.Get(context.Background())
				}(i)
			}
			wg.Wait()

			if p.Attempts() != 1 {
				t.Errorf("Expected 1 attempt, got %d", p.Attempts())
			}
			for i := 1; i < callers; i++ {
				if handles[i] != handles[0] {
					t.Errorf("caller %d got a different handle", i)
				}
				if errs[i] != errs[0] {
					t.Errorf("caller %d got a different error", i)
				}
			}
		})
	}
}

func TestProviderIgnoresCallerCancellation(t *testing.T) {
	p := NewProvider(ProviderOptions{Driver: "duckdb", Credentials: StaticCredentials(validCreds)})
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Get(ctx); err != nil {
		t.Fatalf("Expected construction to survive a cancelled caller, got %v", err)
	}
}

func TestProviderCloseWithoutHandle(t *testing.T) {
	p := NewProvider(ProviderOptions{})
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	_, err := p.Get(context.Background())
	if !errors.Is(err, ErrProviderClosed) {
		t.Errorf("Expected ErrProviderClosed after Close, got %v", err)
	}
	if p.Attempts() != 0 {
		t.Errorf("Expected no construction attempt, got %d", p.Attempts())
	}
}

func TestProviderCloseDuringFirstGet(t *testing.T) {
	p := NewProvider(ProviderOptions{Driver: "duckdb", Credentials: StaticCredentials(validCreds)})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = p.Get(context.Background())
		}()
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	wg.Wait()

	if p.Attempts() > 1 {
		t.Errorf("Expected at most one attempt, got %d", p.Attempts())
	}
}
