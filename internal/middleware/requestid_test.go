// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/tomtom215/deskintel/internal/logging"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	var capturedID, chiID, correlationID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
		chiID = chimiddleware.GetReqID(r.Context())
		correlationID = logging.CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("Response X-Request-ID is not a valid UUID: %v", err)
	}
	if capturedID != responseID {
		t.Errorf("Context ID (%s) doesn't match response header ID (%s)", capturedID, responseID)
	}
	if chiID != responseID {
		t.Errorf("chi request ID (%s) doesn't match response header ID (%s)", chiID, responseID)
	}
	if correlationID == "" {
		t.Error("Expected a correlation ID in context")
	}
}

func TestRequestID_PreservesExistingID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"upstream id kept", "proxy-abc-123", true},
		{"oversized id replaced", strings.Repeat("x", maxRequestIDLen+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				capturedID = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tt.incoming)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := capturedID == tt.incoming; got != tt.keep {
				t.Errorf("Expected keep=%v, got id %q", tt.keep, capturedID)
			}
			if rec.Header().Get(RequestIDHeader) != capturedID {
				t.Errorf("Response header %q doesn't match context %q", rec.Header().Get(RequestIDHeader), capturedID)
			}
		})
	}
}
