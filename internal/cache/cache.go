// Package cache provides the short-lived response cache for upstream reads.
//
// Entries live for a fixed TTL injected at construction and are never
// invalidated early: staleness up to the TTL is accepted by design, since the
// upstream store is the source of truth and the storefront only needs to
// absorb redundant reads.
package cache

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrMiss is returned when a key is absent or its entry has expired.
var ErrMiss = errors.New("cache miss")

// Store is a key to JSON-bytes cache with a fixed per-entry TTL.
type Store interface {
	// Get returns the cached bytes for key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores val under key with the store's TTL.
	Set(ctx context.Context, key string, val []byte) error
}

var (
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"backend"},
	)

	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"backend"},
	)
)
