package memory

import (
	"context"
	"sync"

	"github.com/floramart/floramart/internal/domain/catalog"
)

type CatalogRepository struct {
	mu      sync.RWMutex
	flowers map[string]*catalog.Flower
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{flowers: make(map[string]*catalog.Flower)}
}

func (r *CatalogRepository) FindByID(_ context.Context, id string) (*catalog.Flower, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.flowers[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return f.Clone(), nil
}

func (r *CatalogRepository) Save(_ context.Context, flower *catalog.Flower) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flowers[flower.ID] = flower.Clone()
	return nil
}

// DeductStock is a compare-and-decrement under the store lock, matching the
// guarded update the SQL backend performs.
func (r *CatalogRepository) DeductStock(_ context.Context, id string, quantity int) error {
	if quantity <= 0 {
		return catalog.ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.flowers[id]
	if !ok {
		return catalog.ErrNotFound
	}
	if f.AvailableQuantity < quantity {
		return catalog.ErrInsufficientStock
	}
	f.AvailableQuantity -= quantity
	return nil
}

func (r *CatalogRepository) snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make(map[string]*catalog.Flower, len(r.flowers))
	for id, f := range r.flowers {
		copied[id] = f.Clone()
	}
	return copied
}

func (r *CatalogRepository) restore(snap any) {
	flowers, ok := snap.(map[string]*catalog.Flower)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flowers = flowers
}

var _ catalog.Repository = (*CatalogRepository)(nil)
