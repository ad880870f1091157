package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"contacts-api/config"
)

// fakeStore keeps counters in memory and lets the test move the clock.
type fakeStore struct {
	counts   map[string]int64
	expireAt map[string]time.Time
	now      time.Time
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		counts:   make(map[string]int64),
		expireAt: make(map[string]time.Time),
		now:      time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) expire(key string) {
	if at, ok := s.expireAt[key]; ok && !s.now.Before(at) {
		delete(s.counts, key)
		delete(s.expireAt, key)
	}
}

func (s *fakeStore) Incr(_ context.Context, key string) *redis.IntCmd {
	if s.err != nil {
		return redis.NewIntResult(0, s.err)
	}
	s.expire(key)
	s.counts[key]++
	return redis.NewIntResult(s.counts[key], nil)
}

func (s *fakeStore) PExpire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	if _, ok := s.counts[key]; !ok {
		return redis.NewBoolResult(false, nil)
	}
	s.expireAt[key] = s.now.Add(expiration)
	return redis.NewBoolResult(true, nil)
}

func (s *fakeStore) PTTL(_ context.Context, key string) *redis.DurationCmd {
	s.expire(key)
	if _, ok := s.counts[key]; !ok {
		return redis.NewDurationResult(-2, nil)
	}
	at, ok := s.expireAt[key]
	if !ok {
		return redis.NewDurationResult(-1, nil)
	}
	return redis.NewDurationResult(at.Sub(s.now), nil)
}

func TestRedisLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	l := newLimiter(store, 10, time.Minute)

	for i := 1; i <= 10; i++ {
		d, err := l.Allow(ctx, "ip:GET:/api/v1/contacts")
		require.NoError(t, err)
		assert.True(t, d.Allowed, "hit %d", i)
	}

	store.now = store.now.Add(20 * time.Second)
	d, err := l.Allow(ctx, "ip:GET:/api/v1/contacts")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 40*time.Second, d.RetryAfter)

	// other endpoints keep their own budget
	d, err = l.Allow(ctx, "ip:POST:/api/v1/contacts")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	store.now = store.now.Add(40 * time.Second)
	d, err = l.Allow(ctx, "ip:GET:/api/v1/contacts")
	require.NoError(t, err)
	assert.True(t, d.Allowed, "a new window starts after expiry")
}

func TestRedisLimiter_KeyPrefix(t *testing.T) {
	store := newFakeStore()
	l := newLimiter(store, 1, time.Minute)

	_, err := l.Allow(context.Background(), "k")
	require.NoError(t, err)

	assert.Equal(t, int64(1), store.counts[keyPrefix+"k"])
	assert.Contains(t, store.expireAt, keyPrefix+"k")
}

func TestRedisLimiter_RepairsMissingExpiry(t *testing.T) {
	store := newFakeStore()
	store.counts[keyPrefix+"k"] = 5

	l := newLimiter(store, 1, 30*time.Second)

	d, err := l.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 30*time.Second, d.RetryAfter)
	assert.Equal(t, store.now.Add(30*time.Second), store.expireAt[keyPrefix+"k"])
}

func TestRedisLimiter_StoreError(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")

	l := newLimiter(store, 10, time.Minute)

	_, err := l.Allow(context.Background(), "k")
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
}

func TestRedisLimiter_NilStore(t *testing.T) {
	l := &RedisLimiter{times: 1, window: time.Second}

	_, err := l.Allow(context.Background(), "k")
	require.Error(t, err)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewRedisClient(ctx, config.Redis{}, "127.0.0.1:1", zap.NewNop())
	require.Error(t, err)
}
