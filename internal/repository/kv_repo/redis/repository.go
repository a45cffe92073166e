package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mini_casino/internal/config"
	"mini_casino/internal/repository"
)

const keyPrefix = "casino:"

type repo struct {
	rdb redis.UniversalClient
}

func NewKVRepository(rdb redis.UniversalClient) repository.KVRepository {
	return &repo{rdb: rdb}
}

// NewClient Создает клиента и проверяет соединение
func NewClient(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, func(), error) {
	rdb := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{cfg.Addr()},
		Password:     cfg.Password(),
		DB:           cfg.DB(),
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     4,
		MaxRetries:   3,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed pinging redis: %w", err)
	}

	cleanup := func() {
		_ = rdb.Close()
	}
	return rdb, cleanup, nil
}

func (r *repo) Get(ctx context.Context, key string) (string, error) {
	v, err := r.rdb.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (r *repo) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
