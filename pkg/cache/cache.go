// Package cache wraps the Redis client shared by idempotency replay and
// login rate limiting.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb    *redis.Client
	prefix string
}

func Connect(ctx context.Context, url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(rdb), nil
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, prefix: "sophies:"}
}

func (s *Store) Close() error { return s.rdb.Close() }

// Get returns "" without error on a miss.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, s.prefix+key, value, ttl).Err()
}

// Hit counts one event in a fixed window and returns the running count.
// The window starts with the first hit.
func (s *Store) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := s.prefix + key
	n, err := s.rdb.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := s.rdb.Expire(ctx, k, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.rdb.Ping(ctx).Err() }
