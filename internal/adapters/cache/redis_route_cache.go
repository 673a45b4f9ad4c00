package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ilayShalev/claudpro/internal/domain"
)

const routeCachePrefix = "cache:route:"

// DefaultRouteTTL bounds how long a cached route is trusted. Traffic
// conditions drift, so entries expire rather than live for the process
// lifetime.
const DefaultRouteTTL = 15 * time.Minute

// RedisRouteCache is a TTL-bounded route cache shared across instances.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = DefaultRouteTTL
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (*domain.RouteDetails, error) {
	data, err := c.client.Get(ctx, routeCachePrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, fmt.Errorf("redis route cache get: %w", err)
	}

	var route domain.RouteDetails
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, fmt.Errorf("redis route cache decode: %w", err)
	}
	return &route, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, route *domain.RouteDetails) error {
	data, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("redis route cache encode: %w", err)
	}
	if err := c.client.Set(ctx, routeCachePrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis route cache set: %w", err)
	}
	return nil
}
