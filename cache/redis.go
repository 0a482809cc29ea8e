// Package cache оборачивает go-redis для TTL-кэширования
// агрегированной статистики.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss возвращается, когда ключа нет или он истёк.
var ErrCacheMiss = errors.New("cache miss")

type RedisClient struct {
	*redis.Client
}

// NewClient подключается к Redis и проверяет соединение.
func NewClient(ctx context.Context, addr, password string) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     100,
		MinIdleConns: 10,
		PoolTimeout:  30 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisClient{Client: client}, nil
}

func (r *RedisClient) Close() error {
	return r.Client.Close()
}

// Get возвращает значение ключа; отсутствие ключа — ErrCacheMiss.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	value, err := r.Client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return value, nil
}

// Set записывает значение с TTL и сразу возвращает .Err().
func (r *RedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}
