// Package cart holds the per-session cart state for the storefront.
//
// Carts live in process memory only: they are a UI convenience, not durable
// state, and losing them on restart costs the visitor a few clicks at most.
// The upstream store owns the authoritative order once checkout happens.
package cart

import (
	"sync"

	"github.com/Ricciar/grape-ceramics/internal/domain"
)

// Store keeps one cart per session id, guarded by a single RWMutex. All
// returned carts are deep copies so callers can never mutate stored state
// without going through the store.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

// NewStore creates an empty session cart store.
func NewStore() *Store {
	return &Store{carts: make(map[string]*domain.Cart)}
}

// Get returns a copy of the session's cart. An unknown session yields an
// empty cart rather than an error: every visitor has a cart, it just may
// have nothing in it yet.
func (s *Store) Get(sessionID string) *domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.carts[sessionID]; ok {
		return c.Clone()
	}
	return &domain.Cart{}
}

// Add merges a line into the session's cart with the given quantity delta
// and returns a copy of the updated cart.
func (s *Store) Add(sessionID string, line domain.CartLine, delta int) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		c = &domain.Cart{}
		s.carts[sessionID] = c
	}
	c.Add(line, delta)

	if c.IsEmpty() {
		delete(s.carts, sessionID)
	}
	return c.Clone()
}

// Remove deletes a product line from the session's cart and returns a copy
// of the updated cart.
func (s *Store) Remove(sessionID string, productID int) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return &domain.Cart{}
	}
	c.Remove(productID)

	if c.IsEmpty() {
		delete(s.carts, sessionID)
		return &domain.Cart{}
	}
	return c.Clone()
}

// Clear drops the session's cart entirely.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
