package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/cart/repository"
	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/domain"
)

func setupStore(t *testing.T) (*Store, *repository.MemoryRepository) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	store := NewStore("tenant-1", repo, nil)
	require.NoError(t, store.Hydrate(context.Background()))
	return store, repo
}

func product(ref string, price string, ceiling *int) domain.LineItem {
	return domain.LineItem{
		Key:          domain.ItemKey(domain.ItemKindProduct, ref),
		Name:         "Product " + ref,
		UnitPrice:    decimal.RequireFromString(price),
		Kind:         domain.ItemKindProduct,
		StockCeiling: ceiling,
	}
}

func service(ref string, price string) domain.LineItem {
	return domain.LineItem{
		Key:       domain.ItemKey(domain.ItemKindService, ref),
		Name:      "Service " + ref,
		UnitPrice: decimal.RequireFromString(price),
		Kind:      domain.ItemKindService,
	}
}

func TestStore_AddItem_MergesByKey(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, product("42", "10", nil)))
	require.NoError(t, store.AddItem(ctx, product("42", "10", nil)))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStore_AddItem_DistinctKeysAppend(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, product("42", "10", nil)))
	require.NoError(t, store.AddItem(ctx, service("42", "25")))

	// Same catalog ref, different kind: two entries.
	assert.Equal(t, 2, store.Len())
}

func TestStore_SetQuantity(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	key := domain.ItemKey(domain.ItemKindProduct, "42")

	require.NoError(t, store.AddItem(ctx, product("42", "10", nil)))
	require.NoError(t, store.SetQuantity(ctx, key, 7))

	assert.Equal(t, 7, store.Items()[0].Quantity)
}

func TestStore_SetQuantity_ZeroOrNegativeRemoves(t *testing.T) {
	ctx := context.Background()
	key := domain.ItemKey(domain.ItemKindProduct, "42")

	for _, n := range []int{0, -3} {
		store, _ := setupStore(t)
		require.NoError(t, store.AddItem(ctx, product("42", "10", nil)))

		require.NoError(t, store.SetQuantity(ctx, key, n))
		assert.Equal(t, 0, store.Len())
	}
}

func TestStore_SetQuantity_UnknownKey(t *testing.T) {
	store, _ := setupStore(t)

	err := store.SetQuantity(context.Background(), "product:missing", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestStore_StockCeiling(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	ceiling := 3
	key := domain.ItemKey(domain.ItemKindProduct, "42")

	for i := 0; i < 3; i++ {
		require.NoError(t, store.AddItem(ctx, product("42", "10", &ceiling)))
	}

	err := store.AddItem(ctx, product("42", "10", &ceiling))
	var stockErr *StockLimitError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Ceiling)
	assert.Equal(t, key, stockErr.Key)

	// Cart unchanged by the rejected add.
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestStore_SetQuantity_RespectsCeiling(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	ceiling := 3
	key := domain.ItemKey(domain.ItemKindProduct, "42")

	require.NoError(t, store.AddItem(ctx, product("42", "10", &ceiling)))

	err := store.SetQuantity(ctx, key, 4)
	var stockErr *StockLimitError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 1, store.Items()[0].Quantity)

	require.NoError(t, store.SetQuantity(ctx, key, 3))
	assert.Equal(t, 3, store.Items()[0].Quantity)
}

func TestStore_ServicesHaveNoCeiling(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		require.NoError(t, store.AddItem(ctx, service("cut", "40")))
	}
	assert.Equal(t, 50, store.Items()[0].Quantity)
}

func TestStore_RemoveAndClear(t *testing.T) {
	store, repo := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, product("1", "10", nil)))
	require.NoError(t, store.AddItem(ctx, product("2", "20", nil)))

	require.NoError(t, store.RemoveItem(ctx, domain.ItemKey(domain.ItemKindProduct, "1")))
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Clear(ctx))
	assert.Equal(t, 0, store.Len())

	_, err := repo.Load(ctx, "tenant-1")
	assert.ErrorIs(t, err, repository.ErrCartNotFound)
}

func TestStore_MutationsMirrorToSlot(t *testing.T) {
	store, repo := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, product("42", "10", nil)))

	persisted, err := repo.Load(ctx, "tenant-1")
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, 1, persisted[0].Quantity)

	require.NoError(t, store.SetQuantity(ctx, persisted[0].Key, 5))

	persisted, err = repo.Load(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, 5, persisted[0].Quantity)
}

func TestStore_HydrateRestoresSlot(t *testing.T) {
	repo := repository.NewMemoryRepository()
	ctx := context.Background()

	first := NewStore("tenant-1", repo, nil)
	require.NoError(t, first.Hydrate(ctx))
	require.NoError(t, first.AddItem(ctx, product("42", "10", nil)))

	second := NewStore("tenant-1", repo, nil)
	require.NoError(t, second.Hydrate(ctx))

	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.ItemKey(domain.ItemKindProduct, "42"), items[0].Key)
}

func TestStore_HydrateEmptyTenant(t *testing.T) {
	store := NewStore("fresh", repository.NewMemoryRepository(), nil)

	require.NoError(t, store.Hydrate(context.Background()))
	assert.Equal(t, 0, store.Len())
}

type failingRepo struct {
	repository.Repository
	mu    sync.Mutex
	fails int
}

func (f *failingRepo) Save(context.Context, string, []domain.LineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fails++
	return errors.New("slot unavailable")
}

func (f *failingRepo) Load(context.Context, string) ([]domain.LineItem, error) {
	return nil, repository.ErrCartNotFound
}

func TestStore_SaveFailureDoesNotBlockMutation(t *testing.T) {
	repo := &failingRepo{}
	store := NewStore("tenant-1", repo, nil)
	ctx := context.Background()
	require.NoError(t, store.Hydrate(ctx))

	require.NoError(t, store.AddItem(ctx, product("42", "10", nil)))

	assert.Equal(t, 1, store.Len())
	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, 1, repo.fails)
}
