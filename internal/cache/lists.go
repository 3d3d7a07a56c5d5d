// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// lists.go provides a Valkey-backed cache for list responses.
// Category lists change rarely but are fetched on almost every page
// load, so the serialized JSON payload is kept in Valkey and dropped
// whenever a category mutation happens.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// listKeyPrefix is the Valkey key prefix for cached list payloads.
	listKeyPrefix = "list:"

	// DefaultListTTL is how long a cached list payload stays fresh.
	DefaultListTTL = 5 * time.Minute
)

// ListCache caches serialized list responses in Valkey. A nil client
// disables caching, every Get is a miss and Set/Invalidate are no-ops.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache creates a list cache backed by the given Valkey client.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl == 0 {
		ttl = DefaultListTTL
	}
	return &ListCache{client: client, ttl: ttl}
}

// Get retrieves a cached payload. Returns false on miss or error.
func (lc *ListCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if lc == nil || lc.client == nil {
		return nil, false
	}
	val, err := lc.client.Get(ctx, listKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("list cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("list cache hit", "key", key)
	return val, true
}

// Set stores a serialized payload with the configured TTL.
func (lc *ListCache) Set(ctx context.Context, key string, payload []byte) {
	if lc == nil || lc.client == nil {
		return
	}
	if err := lc.client.Set(ctx, listKeyPrefix+key, payload, lc.ttl).Err(); err != nil {
		slog.Warn("list cache set error", "key", key, "error", err)
	}
}

// Invalidate removes all cached payloads under the given key prefix.
// Category mutations call this with "categories" to drop every cached
// variant (search and featured filters included).
func (lc *ListCache) Invalidate(ctx context.Context, prefix string) {
	if lc == nil || lc.client == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := lc.client.Scan(ctx, cursor, listKeyPrefix+prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("list cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := lc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("list cache delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("list cache invalidated", "prefix", prefix, "deleted", deleted)
	}
}
