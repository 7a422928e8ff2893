package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the key-value store with Redis, for carts shared
// across machines. Keys are prefixed to keep the namespace tidy.
type RedisStore struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
		keyPrefix:   "boutique:kv:",
	}
}

func (s *RedisStore) Get(key string) ([]byte, error) {
	val, err := s.redisClient.Get(context.Background(), s.keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

func (s *RedisStore) Set(key string, value []byte) error {
	if err := s.redisClient.Set(context.Background(), s.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}
