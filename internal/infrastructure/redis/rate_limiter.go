package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iknmuh/mypos/pkg/logger"
)

// RateLimiter is a fixed-window counter over Redis. With a nil client every
// request is allowed; an unreachable backend also fails open, because
// dropping sales over a limiter outage is the wrong trade.
type RateLimiter struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRateLimiter wraps the client; client may be nil.
func NewRateLimiter(client *redis.Client, log *logger.Logger) *RateLimiter {
	return &RateLimiter{client: client, log: log}
}

// Allow counts one hit for key in the current window and reports whether it
// stays within limit.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if r.client == nil {
		return true
	}

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
		return true
	}
	return incr.Val() <= int64(limit)
}
