package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisLimiter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client, now: time.Now}
}

// NewRedisClient connects and pings.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (r *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	now := r.now()
	index := windowIndex(now, window)
	k := windowKey(key, index)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireAt(ctx, k, windowEnd(index, window))
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit: redis: %w", err)
	}

	return result(int(incr.Val()), limit, now, index, window), nil
}
