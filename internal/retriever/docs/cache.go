package docs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache is an ephemeral read-through cache for assembled contexts.
// Identical objectives are common (the same learning goals keep coming back),
// and the vector search is the slowest collaborator in the pipeline. Every
// redis error degrades to a miss.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			slog.DebugContext(ctx, "cache get failed", "error", err)
		}
		return "", false
	}
	return val, true
}

func (c *redisCache) Set(ctx context.Context, key, value string) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		slog.DebugContext(ctx, "cache set failed", "error", err)
	}
}

func cacheKey(collection, objective string) string {
	sum := sha256.Sum256([]byte(objective))
	return "mentor:ctx:" + collection + ":" + hex.EncodeToString(sum[:8])
}
