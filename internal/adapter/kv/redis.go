package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/redis/go-redis/v9"
)

var _ port.KVStore = (*Redis)(nil)

type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type Redis struct {
	cl RedisClient
}

func NewRedis(cl RedisClient) Redis {
	return Redis{cl}
}

// DialRedis connects and pings the server, retrying while it comes up.
func DialRedis(ctx context.Context, addr, password string, db int) (Redis, error) {
	const op = "DialRedis"

	cl := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	s := NewRedis(cl)
	if err := s.Ping(ctx); err != nil {
		_ = cl.Close()
		return Redis{}, fmt.Errorf("%s: redis is unavailable: %w", op, err)
	}
	slog.With("op", op).Info("redis is available")
	return s, nil
}

func (s Redis) Ping(ctx context.Context) error {
	return retry.Do(ctx, pingRetry, func() error {
		return s.cl.Ping(ctx).Err()
	})
}

func (s Redis) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "Redis.Get"

	data, err := s.cl.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%s: key %q: %w", op, key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func (s Redis) Set(ctx context.Context, key string, value []byte) error {
	const op = "Redis.Set"

	if err := s.cl.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Redis) Close() error {
	return s.cl.Close()
}
