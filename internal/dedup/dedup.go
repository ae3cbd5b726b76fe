// Package dedup provides candidate deduplication helpers: canonical profile
// URL derivation and an optional Redis cache of already-seen candidates. The
// database remains the source of truth; the cache only short-circuits lookups.
package dedup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long a seen-candidate marker lives in Redis.
const DefaultTTL = 7 * 24 * time.Hour

// CanonicalProfileURL reduces a profile URL to its dedup key: lowercase,
// scheme and "www." stripped, trailing slash removed. Returns "" when no
// URL is available.
func CanonicalProfileURL(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimSuffix(u, "/")
}

// Cache is a Redis-backed seen-candidate set keyed by job and canonical
// profile URL. A nil *Cache is valid and reports nothing as seen.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache connects to Redis at addr. Returns an error if the server does
// not respond to a ping, so callers can fall back to database-only dedup.
func NewCache(ctx context.Context, addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Cache{client: client, ttl: DefaultTTL}, nil
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func cacheKey(jobID uuid.UUID, canonicalURL string) string {
	return fmt.Sprintf("seen:%s:%s", jobID, canonicalURL)
}

// Seen reports whether the candidate was already recorded for this job.
// Cache errors are reported as not seen; the database check still runs.
func (c *Cache) Seen(ctx context.Context, jobID uuid.UUID, canonicalURL string) bool {
	if c == nil || c.client == nil || canonicalURL == "" {
		return false
	}
	n, err := c.client.Exists(ctx, cacheKey(jobID, canonicalURL)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// Mark records the candidate as seen for this job. Errors are ignored; the
// cache is advisory.
func (c *Cache) Mark(ctx context.Context, jobID uuid.UUID, canonicalURL string) {
	if c == nil || c.client == nil || canonicalURL == "" {
		return
	}
	c.client.Set(ctx, cacheKey(jobID, canonicalURL), 1, c.ttl)
}
