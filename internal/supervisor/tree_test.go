// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package supervisor

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

type blockingService struct {
	running atomic.Bool
	started chan struct{}
}

func (s *blockingService) Serve(ctx context.Context) error {
	s.running.Store(true)
	close(s.started)
	<-ctx.Done()
	s.running.Store(false)
	return ctx.Err()
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree, err := NewSupervisorTree(slog.New(slog.NewTextHandler(io.Discard, nil)), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("expected defaults, got %+v", tree.config)
	}
	if tree.Root() == nil {
		t.Error("expected root supervisor")
	}
}

func TestSupervisorTree_RunsBothLayers(t *testing.T) {
	tree, err := NewSupervisorTree(slog.New(slog.NewTextHandler(io.Discard, nil)), TreeConfig{ShutdownTimeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}

	data := &blockingService{started: make(chan struct{})}
	api := &blockingService{started: make(chan struct{})}
	tree.AddDataService(data)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	done := tree.ServeBackground(ctx)

	for _, s := range []*blockingService{data, api} {
		select {
		case <-s.started:
		case <-time.After(time.Second):
			t.Fatal("service did not start")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop")
	}
	if data.running.Load() || api.running.Load() {
		t.Error("services still running after shutdown")
	}
}
