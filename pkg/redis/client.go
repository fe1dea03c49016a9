// Package redis provides a thin wrapper around go-redis/v9 with connection
// pooling and the sorted-set operations used for lexicographic prefix
// lookups.
package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Adithya-Monish-Kumar-K/study-search/pkg/config"
	"github.com/redis/go-redis/v9"
)

// Client wraps a go-redis client.
type Client struct {
	rdb *redis.Client
}

// NewClient creates a Redis client and verifies the connection with a PING.
func NewClient(cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// AddLex adds members to the sorted set at key with a score of zero so that
// ZRANGEBYLEX orders them lexicographically. It returns the number of new
// members.
func (c *Client) AddLex(ctx context.Context, key string, members ...string) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}
	zs := make([]redis.Z, len(members))
	for i, m := range members {
		zs[i] = redis.Z{Score: 0, Member: m}
	}
	added, err := c.rdb.ZAdd(ctx, key, zs...).Result()
	if err != nil {
		return 0, fmt.Errorf("zadd %s: %w", key, err)
	}
	return added, nil
}

// RangeByLex returns up to limit members of key within the inclusive lexical
// range [min, max].
func (c *Client) RangeByLex(ctx context.Context, key, min, max string, limit int) ([]string, error) {
	members, err := c.rdb.ZRangeByLex(ctx, key, &redis.ZRangeBy{
		Min:   "[" + min,
		Max:   "[" + max,
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("zrangebylex %s: %w", key, err)
	}
	return members, nil
}

// Card returns the number of members in the sorted set at key.
func (c *Client) Card(ctx context.Context, key string) (int64, error) {
	return c.rdb.ZCard(ctx, key).Result()
}

// Del deletes one or more keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// Close closes the underlying Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping sends a PING to Redis and returns any error.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Addr returns the address the client dials, for logging.
func (c *Client) Addr() string {
	return c.rdb.Options().Addr + "/" + strconv.Itoa(c.rdb.Options().DB)
}
