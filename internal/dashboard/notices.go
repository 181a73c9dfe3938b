// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package dashboard

import (
	"sync"

	"github.com/tomtom215/deskintel/internal/database"
)

// Notice is a user-visible error message shown above the page content.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NoticeBoard collects configuration and connection failures reported by
// the connection provider. It implements database.ErrorReporter.
type NoticeBoard struct {
	mu      sync.RWMutex
	notices []Notice
}

// NewNoticeBoard returns an empty board.
func NewNoticeBoard() *NoticeBoard {
	return &NoticeBoard{}
}

// ReportError records err. Identical messages are kept once.
func (b *NoticeBoard) ReportError(err *database.DataAccessError) {
	if err == nil {
		return
	}
	n := Notice{Kind: err.Kind.String(), Message: err.Error()}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.notices {
		if existing == n {
			return
		}
	}
	b.notices = append(b.notices, n)
}

// Notices returns a copy of the recorded notices in report order.
func (b *NoticeBoard) Notices() []Notice {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Notice, len(b.notices))
	copy(out, b.notices)
	return out
}
