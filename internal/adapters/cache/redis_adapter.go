// Package cache provides StoreProvider implementations: Redis for deployed
// environments and an in-process memory store for development and tests.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/careseek/booking-backend/internal/domain/providers"
	redisclient "github.com/careseek/booking-backend/internal/infrastructure/clients/redis"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

// RedisAdapter implements the StoreProvider interface using Redis
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis store adapter
func NewRedisAdapter(client *redisclient.Client) providers.StoreProvider {
	return &RedisAdapter{
		client: client,
	}
}

// Get retrieves a value from the store
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := a.client.Client().Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("key not found: %s", key))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from store: %w", err)
	}
	return result, nil
}

// Set stores a value with a TTL
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := a.client.Client().Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in store: %w", err)
	}
	return nil
}

// Delete removes a value from the store
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Client().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete from store: %w", err)
	}
	return nil
}

// Exists checks if a key exists in the store
func (a *RedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	result, err := a.client.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence in store: %w", err)
	}
	return result > 0, nil
}
