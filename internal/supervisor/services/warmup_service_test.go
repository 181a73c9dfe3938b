// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

type countingWarmer struct {
	err   error
	calls atomic.Int32
}

func (w *countingWarmer) Warm(ctx context.Context) error {
	w.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected a deadline")
	}
	return w.err
}

func TestWarmupService_NeverRestarts(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"failure", errors.New("Error running query: timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warmer := &countingWarmer{err: tt.err}
			svc := NewWarmupService(warmer, time.Second)

			if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
				t.Errorf("expected ErrDoNotRestart, got %v", err)
			}

			sup := suture.New("warmup-test", suture.Spec{FailureBackoff: time.Millisecond, Timeout: time.Second})
			sup.Add(NewWarmupService(warmer, time.Second))
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			<-sup.ServeBackground(ctx)

			if got := warmer.calls.Load(); got != 2 {
				t.Errorf("expected 2 warm calls (direct + supervised once), got %d", got)
			}
		})
	}
}

func TestNewWarmupService_DefaultTimeout(t *testing.T) {
	if svc := NewWarmupService(&countingWarmer{}, 0); svc.timeout != 30*time.Second {
		t.Errorf("expected 30s default, got %v", svc.timeout)
	}
	if NewWarmupService(&countingWarmer{}, 0).String() != "report-warmup" {
		t.Error("unexpected service name")
	}
}
