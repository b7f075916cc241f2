package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key prefixes for the aggregated views. Everything under a prefix is
// dropped together when a scrape run lands fresh data.
const (
	boardKeyPrefix = "aces:board:"
	teamKeyPrefix  = "aces:team:"
)

// RedisCache caches computed tournament and team views
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// BoardKey builds the cache key for a tournament board variant.
func BoardKey(variant string) string {
	return boardKeyPrefix + variant
}

// TeamKey builds the cache key for a team view (hitting, pitching, games).
func TeamKey(teamID, view string) string {
	return teamKeyPrefix + teamID + ":" + view
}

// Set stores a key-value pair with TTL
func (rc *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return rc.client.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a value by key
func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return rc.client.Get(ctx, key).Result()
}

// Delete removes a key
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}

// InvalidateViews drops every cached board and team view. Called after each
// scrape run so stale standings never outlive fresh data.
func (rc *RedisCache) InvalidateViews(ctx context.Context) error {
	for _, prefix := range []string{boardKeyPrefix, teamKeyPrefix} {
		iter := rc.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			if err := rc.client.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	return nil
}
