package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ResponseCache stores raw CMS response bodies in Redis.
type ResponseCache struct {
	client *redis.Client
	prefix string
}

// DefaultCachePrefix namespaces every cached response key.
const DefaultCachePrefix = "cms:"

// NewResponseCache connects to Redis and verifies the connection.
func NewResponseCache(redisURL string, log *zap.Logger) (*ResponseCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	log.Info("redis connection established", zap.String("addr", opt.Addr))
	return &ResponseCache{client: client, prefix: DefaultCachePrefix}, nil
}

// Get returns a cached body. A miss is reported as redis.Nil.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, c.prefix+key).Bytes()
}

// Set stores a body for ttl.
func (c *ResponseCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, body, ttl).Err()
}

// Purge deletes every cached body whose key starts with prefix and returns
// how many were removed. An empty prefix purges the whole namespace.
func (c *ResponseCache) Purge(ctx context.Context, prefix string) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	match := c.prefix + prefix + "*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, 100).Result()
		if err != nil {
			return removed, err
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, err
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}

// Close closes the Redis connection.
func (c *ResponseCache) Close() error {
	return c.client.Close()
}
