package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	val       []byte
	expiresAt time.Time
}

// Memory is the in-process cache backend: a map guarded by a RWMutex with
// per-entry expiry checked lazily on read. Expired entries are dropped on
// access rather than swept, which is fine for the handful of keys the
// storefront caches.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates an in-memory cache store with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached bytes for key, or ErrMiss when absent or expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if ok && !m.now().After(e.expiresAt) {
		cacheHits.WithLabelValues("memory").Inc()
		return e.val, nil
	}

	if ok {
		// A concurrent Set may have refreshed the entry since the read
		// above; only drop it when it is still expired.
		m.mu.Lock()
		if cur, still := m.entries[key]; still && m.now().After(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
	}

	cacheMisses.WithLabelValues("memory").Inc()
	return nil, ErrMiss
}

// Set stores val under key with the configured TTL.
func (m *Memory) Set(_ context.Context, key string, val []byte) error {
	m.mu.Lock()
	m.entries[key] = entry{val: val, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}
