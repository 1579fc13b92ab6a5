package domain

import (
	"context"
	"time"
)

// CacheRepository stores generated meal plans under string keys.
// Get reports a miss as ErrCacheMiss; backend failures wrap ErrCacheUnavailable.
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
