package repository

import (
	"context"
	"errors"

	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/domain"
)

// ErrCartNotFound means the tenant has no persisted cart slot yet; callers
// treat it as an empty cart.
var ErrCartNotFound = errors.New("cart not found")

// Repository is the persistence port for the tenant-scoped cart slot: one
// serialized line-item list per tenant, overwritten on every mutation. It is
// a durability slot, not a cache, and not a lock.
type Repository interface {
	Load(ctx context.Context, tenant string) ([]domain.LineItem, error)
	Save(ctx context.Context, tenant string, items []domain.LineItem) error
	Clear(ctx context.Context, tenant string) error
}
