package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// FollowingCachePrefix is the key prefix for cached following sets
	FollowingCachePrefix = "following:user:"

	// FollowingCacheTTL bounds staleness after a missed invalidation
	FollowingCacheTTL = time.Hour
)

// FollowingCache caches each user's following set for feed composition. The
// cache holds membership only; the feed never depends on ordering.
type FollowingCache interface {
	// Get returns the cached following set. found is false on a miss; an
	// empty following set always misses, which is harmless.
	Get(ctx context.Context, userID string) (following []string, found bool, err error)

	// Set replaces the cached following set and refreshes the TTL.
	Set(ctx context.Context, userID string, following []string) error

	// Invalidate drops the cached set. Called after every follow/unfollow so
	// the next feed read sees the store's current sequence.
	Invalidate(ctx context.Context, userID string) error
}

// NewRedisClient creates a Redis client from a URL.
// URL format: redis://[:password@]host:port[/db]
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// redisFollowingCache implements FollowingCache using Redis sets.
type redisFollowingCache struct {
	client *redis.Client
}

// NewFollowingCache creates a FollowingCache backed by Redis.
func NewFollowingCache(client *redis.Client) FollowingCache {
	return &redisFollowingCache{client: client}
}

func followingKey(userID string) string {
	return FollowingCachePrefix + userID
}

func (c *redisFollowingCache) Get(ctx context.Context, userID string) ([]string, bool, error) {
	key := followingKey(userID)

	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("check following cache: %w", err)
	}
	if exists == 0 {
		return nil, false, nil
	}

	members, err := c.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("read following cache: %w", err)
	}

	c.client.Expire(ctx, key, FollowingCacheTTL)
	return members, true, nil
}

func (c *redisFollowingCache) Set(ctx context.Context, userID string, following []string) error {
	if len(following) == 0 {
		// An absent key already means "miss"; nothing to store.
		return c.Invalidate(ctx, userID)
	}

	key := followingKey(userID)
	members := make([]interface{}, len(following))
	for i, id := range following {
		members[i] = id
	}

	pipe := c.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, FollowingCacheTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write following cache: %w", err)
	}
	return nil
}

func (c *redisFollowingCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, followingKey(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate following cache: %w", err)
	}
	return nil
}

// nopFollowingCache is used when the feed-cache feature is disabled: every
// read misses and falls through to the store.
type nopFollowingCache struct{}

// NewNopFollowingCache returns a FollowingCache that caches nothing.
func NewNopFollowingCache() FollowingCache {
	return nopFollowingCache{}
}

func (nopFollowingCache) Get(ctx context.Context, userID string) ([]string, bool, error) {
	return nil, false, nil
}

func (nopFollowingCache) Set(ctx context.Context, userID string, following []string) error {
	return nil
}

func (nopFollowingCache) Invalidate(ctx context.Context, userID string) error {
	return nil
}
