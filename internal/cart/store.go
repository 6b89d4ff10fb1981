package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/cart/repository"
	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/domain"
)

// Store owns the line items of one checkout session for one tenant. Every
// mutation is mirrored to the tenant's persisted slot; a save failure is
// logged and the in-memory mutation stands, since the slot is a convenience
// mirror rather than the source of truth for the live session.
type Store struct {
	tenant string
	repo   repository.Repository
	log    *zap.Logger

	mu    sync.Mutex
	items []domain.LineItem

	sfg singleflight.Group
}

func NewStore(tenant string, repo repository.Repository, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		tenant: tenant,
		repo:   repo,
		log:    log,
	}
}

func (s *Store) Tenant() string { return s.tenant }

// Hydrate loads the tenant's persisted slot into the store. A tenant with no
// prior slot starts empty. Concurrent hydrations of the same tenant collapse
// into a single repository read.
func (s *Store) Hydrate(ctx context.Context) error {
	_, err, _ := s.sfg.Do(s.tenant, func() (interface{}, error) {
		items, err := s.repo.Load(ctx, s.tenant)
		if errors.Is(err, repository.ErrCartNotFound) {
			items = nil
		} else if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.items = items
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// AddItem merges the candidate into the cart: an existing entry with the same
// key gains quantity 1, otherwise the candidate is appended with quantity 1.
// The candidate's own quantity field is ignored.
func (s *Store) AddItem(ctx context.Context, candidate domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key != candidate.Key {
			continue
		}
		if err := checkCeiling(s.items[i], s.items[i].Quantity+1); err != nil {
			return err
		}
		s.items[i].Quantity++
		s.persist(ctx)
		return nil
	}

	if err := checkCeiling(candidate, 1); err != nil {
		return err
	}
	candidate.Quantity = 1
	s.items = append(s.items, candidate)
	s.persist(ctx)
	return nil
}

// SetQuantity sets the quantity of an existing entry. A value of zero or
// below removes the entry; an item is never retained at quantity zero.
func (s *Store) SetQuantity(ctx context.Context, key string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key != key {
			continue
		}
		if n <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return nil
		}
		if err := checkCeiling(s.items[i], n); err != nil {
			return err
		}
		s.items[i].Quantity = n
		s.persist(ctx)
		return nil
	}
	return ErrItemNotFound
}

func (s *Store) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Key == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return ErrItemNotFound
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.repo.Clear(ctx, s.tenant); err != nil {
		s.log.Warn("cart slot clear failed", zap.String("tenant", s.tenant), zap.Error(err))
	}
	return nil
}

// Items returns a copy of the current line items.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// persist mirrors the current items to the tenant slot. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)

	if err := s.repo.Save(ctx, s.tenant, items); err != nil {
		s.log.Warn("cart slot save failed", zap.String("tenant", s.tenant), zap.Error(err))
	}
}

// checkCeiling rejects a resulting quantity past the product's stock ceiling.
// Services carry no ceiling and always pass.
func checkCeiling(item domain.LineItem, resulting int) error {
	if item.Kind != domain.ItemKindProduct || item.StockCeiling == nil {
		return nil
	}
	if resulting > *item.StockCeiling {
		return &StockLimitError{Key: item.Key, Ceiling: *item.StockCeiling}
	}
	return nil
}
