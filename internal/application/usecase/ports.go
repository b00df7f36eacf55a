package usecase

import (
	"context"
	"time"
)

// Cache is a read-through cache with explicit invalidation. Every method is
// best-effort: a missing or broken backend behaves like a permanent miss and
// never fails the caller.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration)
	InvalidateProducts(ctx context.Context, storeID string)
	InvalidateTransactions(ctx context.Context, storeID string)
	InvalidateDashboard(ctx context.Context, storeID string)
}

// LLMService answers a free-form business question. Implemented by the
// Anthropic-compatible HTTP client.
type LLMService interface {
	Ask(ctx context.Context, system, question string) (string, error)
}
