// Package cache holds the redis-backed cache for per-title average
// ratings. The cache is an optional collaborator: a nil *RatingsCache (or
// one without a client) degrades to recomputing from the database.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// noRating marks a cached "title has no reviews" result so the absence of
// reviews does not force a recompute on every read.
const noRating = "none"

type RatingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingsCache connects to redis and verifies the connection. Returns
// an error when redis is unreachable; callers may choose to run without
// the cache in that case.
func NewRatingsCache(addr, password string, ttl time.Duration) (*RatingsCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RatingsCache{client: rdb, ttl: ttl}, nil
}

func key(titleID int64) string {
	return fmt.Sprintf("rating:title:%d", titleID)
}

// Get returns (rating, found). rating is nil both on a miss and for a
// cached no-reviews entry; found distinguishes the two.
func (c *RatingsCache) Get(ctx context.Context, titleID int64) (*float64, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, key(titleID)).Result()
	if err != nil {
		// treat miss and transport errors alike: recompute
		return nil, false
	}
	if val == noRating {
		return nil, true
	}

	rating, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, false
	}
	return &rating, true
}

func (c *RatingsCache) Set(ctx context.Context, titleID int64, rating *float64) {
	if c == nil || c.client == nil {
		return
	}

	val := noRating
	if rating != nil {
		val = strconv.FormatFloat(*rating, 'f', -1, 64)
	}
	// best effort; a failed set only costs a recompute later
	c.client.Set(ctx, key(titleID), val, c.ttl)
}

// Invalidate drops the cached rating after any review mutation.
func (c *RatingsCache) Invalidate(ctx context.Context, titleID int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, key(titleID))
}
