// Package catalog holds the client-side snapshot of the product list. The
// snapshot is never mutated in place: admin edits and completed checkouts
// trigger a full reload from the backend.
package catalog

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

type productLister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Store caches the last product list fetched from the backend.
type Store struct {
	api productLister

	mu       sync.Mutex
	products []domain.Product
	loaded   bool
}

func New(api productLister) *Store {
	return &Store{api: api}
}

// Reload replaces the snapshot with a fresh fetch. On failure the previous
// snapshot is kept.
func (s *Store) Reload(ctx context.Context) error {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Loaded reports whether at least one fetch has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Products returns a copy of the current snapshot.
func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get looks up a product by ID in the snapshot.
func (s *Store) Get(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Invalidate drops the snapshot without fetching. Used on logout so the next
// session starts from backend-authoritative data.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.products = nil
	s.loaded = false
	s.mu.Unlock()
}
