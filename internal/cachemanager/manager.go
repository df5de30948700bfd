// Package cachemanager provides a small generic TTL cache used to memoize
// converter building and composition searches, which are pure functions of
// their inputs while a catalog scope is stable. Scope changes and catalog
// reloads flush the caches.
package cachemanager

import (
	"context"
	"time"
)

type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
