package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"contacts-api/config"
	"contacts-api/internal/application/ports"
)

const keyPrefix = "contacts:rl:"

type counterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	PExpire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	PTTL(ctx context.Context, key string) *redis.DurationCmd
}

// RedisLimiter is a fixed-window counter: the first hit on a key opens a
// window of the configured length, every hit increments it, and hits past
// times are refused until the key expires.
type RedisLimiter struct {
	store  counterStore
	times  int64
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, times int, window time.Duration) *RedisLimiter {
	return newLimiter(client, times, window)
}

func newLimiter(store counterStore, times int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		store:  store,
		times:  int64(times),
		window: window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (ports.RateDecision, error) {
	if l.store == nil {
		return ports.RateDecision{}, errors.New("rate limiter store not initialized")
	}
	key = keyPrefix + key

	count, err := l.store.Incr(ctx, key).Result()
	if err != nil {
		return ports.RateDecision{}, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 {
		if err = l.store.PExpire(ctx, key, l.window).Err(); err != nil {
			return ports.RateDecision{}, fmt.Errorf("pexpire %s: %w", key, err)
		}
	}

	if count <= l.times {
		return ports.RateDecision{Allowed: true}, nil
	}

	ttl, err := l.store.PTTL(ctx, key).Result()
	if err != nil {
		return ports.RateDecision{}, fmt.Errorf("pttl %s: %w", key, err)
	}
	// a key left without expiry would block the client forever
	if ttl < 0 {
		if err = l.store.PExpire(ctx, key, l.window).Err(); err != nil {
			return ports.RateDecision{}, fmt.Errorf("pexpire %s: %w", key, err)
		}
		ttl = l.window
	}

	return ports.RateDecision{Allowed: false, RetryAfter: ttl}, nil
}

// NewRedisClient connects and pings the limiter backend.
func NewRedisClient(ctx context.Context, cfg config.Redis, addr string, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("connected to redis", zap.String("addr", addr))

	return client, nil
}
