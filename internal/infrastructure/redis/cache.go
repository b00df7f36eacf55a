// Package redis provides the cache and rate-limit backends. Both are
// optional: with no Redis configured the app runs uncached and unlimited.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iknmuh/mypos/pkg/config"
	"github.com/iknmuh/mypos/pkg/logger"
)

// NewClient connects to Redis, or returns nil when no address is configured.
func NewClient(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.Addr == "" {
		log.Info().Msg("redis not configured, cache and rate limiting disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis unreachable, cache and rate limiting disabled")
		_ = client.Close()
		return nil
	}
	return client
}

// Cache is a JSON cache over Redis. Every method is fail-open: a nil client
// or a backend error behaves like a miss and is at most logged.
type Cache struct {
	client *redis.Client
	log    *logger.Logger
}

// NewCache wraps the client; client may be nil.
func NewCache(client *redis.Client, log *logger.Logger) *Cache {
	return &Cache{client: client, log: log}
}

// GetJSON loads key into dest, reporting whether it was a hit.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache entry corrupt")
		return false
	}
	return true
}

// SetJSON stores val under key with a TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// InvalidateProducts drops every cached product listing of the store.
func (c *Cache) InvalidateProducts(ctx context.Context, storeID string) {
	c.deletePattern(ctx, "produk:"+storeID+":*")
}

// InvalidateTransactions drops cached transaction listings of the store.
func (c *Cache) InvalidateTransactions(ctx context.Context, storeID string) {
	c.deletePattern(ctx, "transaksi:"+storeID+":*")
}

// InvalidateDashboard drops the store's dashboard snapshot.
func (c *Cache) InvalidateDashboard(ctx context.Context, storeID string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, "dashboard:"+storeID).Err(); err != nil {
		c.log.Warn().Err(err).Msg("cache invalidate failed")
	}
}

// deletePattern removes keys matching the pattern via SCAN, never KEYS.
func (c *Cache) deletePattern(ctx context.Context, pattern string) {
	if c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", iter.Val()).Msg("cache invalidate failed")
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Str("pattern", pattern).Msg("cache scan failed")
	}
}
