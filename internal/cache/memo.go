// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

// Package cache provides Memo, the explicit memoization object used by the
// query executor and the report service.
package cache

import (
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/deskintel/internal/metrics"
)

// Entry is a memoized value. A zero ExpiresAt never expires.
type Entry[V any] struct {
	Data      V
	ExpiresAt time.Time
}

func (e Entry[V]) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Stats is a snapshot of memo activity.
type Stats struct {
	Name        string    `json:"name"`
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Shared      int64     `json:"shared"`
	Evictions   int64     `json:"evictions"`
	TotalKeys   int64     `json:"total_keys"`
	LastCleanup time.Time `json:"last_cleanup,omitempty"`
}

// HitRate returns hits as a percentage of all lookups, or 0 with no traffic.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Memo is a keyed, concurrency-safe memoization table.
//
// Do computes a value for a key at most once at a time: concurrent callers
// for the same key wait on the single in-flight computation and share its
// result. Successful results are stored; errors are returned to every
// waiter and never stored, so the next call tries again.
//
// Lifetime:
//   - ttl == 0 keeps entries until Delete, Clear, or process exit. No
//     background goroutine is started.
//   - ttl > 0 expires entries after ttl. A cleanup goroutine removes
//     expired entries every cleanupInterval until Close is called.
//
// Every Memo carries a name used as the "cache" label on the
// deskintel_cache_* metrics.
type Memo[V any] struct {
	name    string
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]Entry[V]
	gen     uint64 // bumped by Clear
	group   singleflight.Group

	statsMu sync.Mutex
	stats   Stats

	stop     chan struct{}
	stopOnce sync.Once
}

const cleanupInterval = time.Minute

// NewMemo creates a memo named name whose entries live for ttl.
func NewMemo[V any](name string, ttl time.Duration) *Memo[V] {
	m := &Memo[V]{
		name:    name,
		ttl:     ttl,
		entries: make(map[string]Entry[V]),
		stats:   Stats{Name: name},
		stop:    make(chan struct{}),
	}
	if ttl > 0 {
		go m.cleanupLoop()
	}
	return m
}

// Name returns the memo name.
func (m *Memo[V]) Name() string {
	return m.name
}

type flightResult[V any] struct {
	value  V
	cached bool
}

// Do returns the value stored under key, computing it with fn on a miss.
// cached reports whether the value came from the table rather than from
// a computation started by this call or one it waited on.
func (m *Memo[V]) Do(key string, fn func() (V, error)) (value V, cached bool, err error) {
	if v, ok := m.lookup(key); ok {
		m.recordHit()
		return v, true, nil
	}

	// Flights are keyed by generation too, so callers arriving after Clear
	// never join a flight that started before it.
	gen := m.generation()
	res, err, shared := m.group.Do(strconv.FormatUint(gen, 10)+"/"+key, func() (interface{}, error) {
		// A flight for this key may have finished between lookup and Do.
		if v, ok := m.lookup(key); ok {
			return flightResult[V]{value: v, cached: true}, nil
		}
		m.recordMiss()
		v, err := fn()
		if err != nil {
			return nil, err
		}
		m.store(gen, key, v)
		return flightResult[V]{value: v}, nil
	})
	if shared {
		m.recordShared()
	}
	if err != nil {
		var zero V
		return zero, false, err
	}

	fr := res.(flightResult[V])
	if fr.cached {
		m.recordHit()
	}
	return fr.value, fr.cached, nil
}

// Get returns the value stored under key.
func (m *Memo[V]) Get(key string) (V, bool) {
	v, ok := m.lookup(key)
	if ok {
		m.recordHit()
	}
	return v, ok
}

// Contains reports whether key holds a live entry without counting a hit.
func (m *Memo[V]) Contains(key string) bool {
	_, ok := m.lookup(key)
	return ok
}

func (m *Memo[V]) lookup(key string) (V, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || entry.expired(time.Now()) {
		var zero V
		return zero, false
	}
	return entry.Data, true
}

// Set stores value under key using the memo TTL.
func (m *Memo[V]) Set(key string, value V) {
	m.store(m.generation(), key, value)
}

func (m *Memo[V]) generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}

// store writes the entry unless Clear ran since gen was read. A computation
// that straddles Clear returns its value to its callers but leaves no entry.
func (m *Memo[V]) store(gen uint64, key string, value V) {
	entry := Entry[V]{Data: value}
	if m.ttl > 0 {
		entry.ExpiresAt = time.Now().Add(m.ttl)
	}

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return
	}
	m.entries[key] = entry
	size := len(m.entries)
	m.mu.Unlock()

	metrics.CacheEntries.WithLabelValues(m.name).Set(float64(size))
}

// Delete removes key.
func (m *Memo[V]) Delete(key string) {
	m.mu.Lock()
	_, ok := m.entries[key]
	delete(m.entries, key)
	size := len(m.entries)
	m.mu.Unlock()

	if ok {
		m.recordEvictions(1)
	}
	metrics.CacheEntries.WithLabelValues(m.name).Set(float64(size))
}

// Clear removes every entry. In-flight computations are not cancelled, but
// their results are not stored, and later callers start a fresh computation.
func (m *Memo[V]) Clear() {
	m.mu.Lock()
	n := len(m.entries)
	m.entries = make(map[string]Entry[V])
	m.gen++
	m.mu.Unlock()

	m.recordEvictions(n)
	metrics.CacheEntries.WithLabelValues(m.name).Set(0)
}

// Len returns the number of stored entries, expired ones included until
// the next cleanup.
func (m *Memo[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// GetStats returns a snapshot of the memo statistics.
func (m *Memo[V]) GetStats() Stats {
	m.statsMu.Lock()
	s := m.stats
	m.statsMu.Unlock()

	s.TotalKeys = int64(m.Len())
	return s
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (m *Memo[V]) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Memo[V]) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.cleanup()
		case <-m.stop:
			return
		}
	}
}

func (m *Memo[V]) cleanup() {
	now := time.Now()

	m.mu.Lock()
	removed := 0
	for key, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, key)
			removed++
		}
	}
	size := len(m.entries)
	m.mu.Unlock()

	m.statsMu.Lock()
	m.stats.LastCleanup = now
	m.statsMu.Unlock()

	m.recordEvictions(removed)
	metrics.CacheEntries.WithLabelValues(m.name).Set(float64(size))
}

func (m *Memo[V]) recordHit() {
	m.statsMu.Lock()
	m.stats.Hits++
	m.statsMu.Unlock()
	metrics.CacheHits.WithLabelValues(m.name).Inc()
}

func (m *Memo[V]) recordMiss() {
	m.statsMu.Lock()
	m.stats.Misses++
	m.statsMu.Unlock()
	metrics.CacheMisses.WithLabelValues(m.name).Inc()
}

func (m *Memo[V]) recordShared() {
	m.statsMu.Lock()
	m.stats.Shared++
	m.statsMu.Unlock()
	metrics.CacheShared.WithLabelValues(m.name).Inc()
}

func (m *Memo[V]) recordEvictions(n int) {
	if n == 0 {
		return
	}
	m.statsMu.Lock()
	m.stats.Evictions += int64(n)
	m.statsMu.Unlock()
	metrics.CacheEvictions.WithLabelValues(m.name).Add(float64(n))
}
