package memory

import (
	"context"
	"sync"
)

// Snapshotter is implemented by the in-memory repositories so TxManager can
// roll their state back when a transactional scope fails.
type Snapshotter interface {
	snapshot() any
	restore(any)
}

// TxManager serialises transactional scopes and restores every registered
// store to its pre-transaction state on error, mirroring a database rollback.
type TxManager struct {
	mu     sync.Mutex
	stores []Snapshotter
}

func NewTxManager(stores ...Snapshotter) *TxManager {
	return &TxManager{stores: stores}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshots := make([]any, len(m.stores))
	for i, s := range m.stores {
		snapshots[i] = s.snapshot()
	}

	if err := fn(ctx); err != nil {
		for i, s := range m.stores {
			s.restore(snapshots[i])
		}
		return err
	}
	return nil
}
