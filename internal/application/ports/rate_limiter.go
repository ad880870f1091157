package ports

import (
	"context"
	"time"
)

type RateDecision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// RateLimiter counts one hit against key and reports whether it is allowed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}
