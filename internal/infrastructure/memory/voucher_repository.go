package memory

import (
	"context"
	"sync"

	"github.com/floramart/floramart/internal/domain/voucher"
)

type VoucherRepository struct {
	mu     sync.RWMutex
	grants map[string]*voucher.Grant
}

func NewVoucherRepository() *VoucherRepository {
	return &VoucherRepository{grants: make(map[string]*voucher.Grant)}
}

func (r *VoucherRepository) FindByIDForUser(_ context.Context, id, userID string) (*voucher.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.grants[id]
	if !ok || g.UserID != userID {
		return nil, voucher.ErrNotFound
	}
	return g.Clone(), nil
}

func (r *VoucherRepository) Save(_ context.Context, grant *voucher.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grants[grant.ID] = grant.Clone()
	return nil
}

func (r *VoucherRepository) snapshot() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make(map[string]*voucher.Grant, len(r.grants))
	for id, g := range r.grants {
		copied[id] = g.Clone()
	}
	return copied
}

func (r *VoucherRepository) restore(snap any) {
	grants, ok := snap.(map[string]*voucher.Grant)
	if !ok {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grants = grants
}

var _ voucher.Repository = (*VoucherRepository)(nil)
