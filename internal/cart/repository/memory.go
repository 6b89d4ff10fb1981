package repository

import (
	"context"
	"sync"

	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/domain"
)

// MemoryRepository implements Repository with in-memory storage. It backs
// single-process deployments and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	slots map[string][]domain.LineItem
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		slots: make(map[string][]domain.LineItem),
	}
}

func (r *MemoryRepository) Load(_ context.Context, tenant string) ([]domain.LineItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items, exists := r.slots[tenant]
	if !exists {
		return nil, ErrCartNotFound
	}

	out := make([]domain.LineItem, len(items))
	copy(out, items)
	return out, nil
}

func (r *MemoryRepository) Save(_ context.Context, tenant string, items []domain.LineItem) error {
	stored := make([]domain.LineItem, len(items))
	copy(stored, items)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[tenant] = stored
	return nil
}

func (r *MemoryRepository) Clear(_ context.Context, tenant string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, tenant)
	return nil
}
