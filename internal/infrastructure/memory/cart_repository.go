package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/floramart/floramart/internal/domain/cart"
)

type CartRepository struct {
	mu    sync.RWMutex
	items map[string]*cart.Item
}

func NewCartRepository() *CartRepository {
	return &CartRepository{items: make(map[string]*cart.Item)}
}

func (r *CartRepository) ListByUser(_ context.Context, userID string) ([]cart.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []cart.Item
	for _, item := range r.items {
		if item.UserID == userID {
			items = append(items, *item.Clone())
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (r *CartRepository) FindByID(_ context.Context, id string) (*cart.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, cart.ErrNotFound
	}
	return item.Clone(), nil
}

func (r *CartRepository) FindByUserAndFlower(_ context.Context, userID, flowerID string) (*cart.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.UserID == userID && item.FlowerID == flowerID {
			return item.Clone(), nil
		}
	}
	return nil, cart.ErrNotFound
}

func (r *CartRepository) Save(_ context.Context, item *cart.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *CartRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return cart.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *CartRepository) ClearByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *CartRepository) snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make(map[string]*cart.Item, len(r.items))
	for id, item := range r.items {
		copied[id] = item.Clone()
	}
	return copied
}

func (r *CartRepository) restore(snap any) {
	items, ok := snap.(map[string]*cart.Item)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
}

var _ cart.Repository = (*CartRepository)(nil)
