package redis

import (
	"context"
	"errors"
	"fmt"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/storage"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStorage хранит значения без TTL: устаревание решает менеджер кэша, а не Redis.
type RedisStorage struct {
	client goredis.UniversalClient
	prefix string
}

func NewRedisStorage(ctx context.Context, opt *goredis.Options, prefix string) (*RedisStorage, error) {
	client := goredis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewRedisStorageWithClient(client, prefix), nil
}

// NewRedisStorageWithClient использует уже настроенный клиент (cluster, sentinel, тесты).
func NewRedisStorageWithClient(client goredis.UniversalClient, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

func (r *RedisStorage) key(key string) string {
	return r.prefix + key
}

func (r *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", custom_err.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage.redis.Get: %w", err)
	}
	return val, nil
}

func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("storage.redis.Set: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	return r.client.Close()
}

var _ storage.KeyValue = (*RedisStorage)(nil)
