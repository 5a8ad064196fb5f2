package store

import (
	"context"
	"errors"
	"time"

	"github.com/hyeonlab/pagelink/internal/shortener"
	"github.com/redis/go-redis/v9"
)

// RedisLinkStore is a Redis implementation of shortener.Store.
type RedisLinkStore struct {
	client *redis.Client
}

// NewRedisLinkStore creates a Redis-backed link store.
func NewRedisLinkStore(client *redis.Client) *RedisLinkStore {
	return &RedisLinkStore{client: client}
}

func (r *RedisLinkStore) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", shortener.ErrNotFound
		}

		return "", err
	}

	return value, nil
}

func (r *RedisLinkStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisLinkStore) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, key, value, ttl).Result()
}

func (r *RedisLinkStore) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.client.Expire(ctx, key, ttl).Result()
}

func (r *RedisLinkStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// Compile-time check.
var _ shortener.Store = (*RedisLinkStore)(nil)
