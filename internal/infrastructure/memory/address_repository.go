package memory

import (
	"context"
	"sync"

	"github.com/floramart/floramart/internal/domain/address"
)

type AddressRepository struct {
	mu        sync.RWMutex
	addresses map[string]*address.Address
}

func NewAddressRepository() *AddressRepository {
	return &AddressRepository{addresses: make(map[string]*address.Address)}
}

func (r *AddressRepository) FindByIDForUser(_ context.Context, id, userID string) (*address.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.addresses[id]
	if !ok || a.UserID != userID {
		return nil, address.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *AddressRepository) Save(_ context.Context, addr *address.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *addr
	r.addresses[addr.ID] = &clone
	return nil
}

var _ address.Repository = (*AddressRepository)(nil)
