package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sinja33/RouteOptimize/internal/domain"
)

const redisKeyPrefix = "geocode:"

// RedisGeocodeCache is an external key-value backing for the geocode cache,
// shared across process restarts and replicas. Values are JSON-encoded
// coordinates; entries do not expire (addresses do not move).
type RedisGeocodeCache struct {
	Client *redis.Client
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client}
}

func (c *RedisGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	uniq := dedupe(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	keys := make([]string, len(uniq))
	for i, a := range uniq {
		keys[i] = redisKeyPrefix + a
	}

	values, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis geocode cache: mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // miss
		}
		var coords domain.Coordinates
		if err := json.Unmarshal([]byte(raw), &coords); err != nil {
			return nil, fmt.Errorf("redis geocode cache: decode %q: %w", uniq[i], err)
		}
		out[uniq[i]] = coords
	}
	return out, nil
}

func (c *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if len(results) == 0 {
		return nil
	}

	pipe := c.Client.Pipeline()
	for addr, coords := range results {
		if addr == "" {
			continue
		}
		payload, err := json.Marshal(coords)
		if err != nil {
			return fmt.Errorf("redis geocode cache: encode %q: %w", addr, err)
		}
		pipe.Set(ctx, redisKeyPrefix+addr, payload, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis geocode cache: pipeline exec: %w", err)
	}
	return nil
}
