package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/domain"
)

// RedisRepository implements Repository against a redis instance. Slots carry
// no TTL: the persisted cart is the durability guarantee, not a cache entry.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) Load(ctx context.Context, tenant string) ([]domain.LineItem, error) {
	data, err := r.client.Get(ctx, slotKey(tenant)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return items, nil
}

func (r *RedisRepository) Save(ctx context.Context, tenant string, items []domain.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := r.client.Set(ctx, slotKey(tenant), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisRepository) Clear(ctx context.Context, tenant string) error {
	if err := r.client.Del(ctx, slotKey(tenant)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func slotKey(tenant string) string {
	return fmt.Sprintf("cart:%s", tenant)
}
