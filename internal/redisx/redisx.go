package redisx

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct{ Rdb *redis.Client }

func New(addr string, password string, db int) *Client {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	return &Client{Rdb: rdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.Rdb.Ping(ctx).Err()
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.Rdb.Get(ctx, key).Result()
}

func (c *Client) Set(ctx context.Context, key string, val string, ttl time.Duration) error {
	return c.Rdb.Set(ctx, key, val, ttl).Err()
}

func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.Rdb.Exists(ctx, key).Result()
	return n == 1, err
}

func (c *Client) TTL(ctx context.Context, key string) (time.Duration, error) {
	return c.Rdb.TTL(ctx, key).Result()
}

func (c *Client) SetNX(ctx context.Context, key string, val string, ttl time.Duration) (bool, error) {
	return c.Rdb.SetNX(ctx, key, val, ttl).Result()
}

func (c *Client) SAdd(ctx context.Context, key string, member string) error {
	return c.Rdb.SAdd(ctx, key, member).Err()
}

func (c *Client) SIsMember(ctx context.Context, key string, member string) (bool, error) {
	return c.Rdb.SIsMember(ctx, key, member).Result()
}

// SetCheckpoint records the last fully processed board page for a source so
// an interrupted crawl resumes where it stopped.
func (c *Client) SetCheckpoint(ctx context.Context, source string, page int) error {
	return c.Set(ctx, "crawl:last:"+source, strconv.Itoa(page), 0)
}

// Checkpoint returns the stored page, or 0 when none exists.
func (c *Client) Checkpoint(ctx context.Context, source string) (int, error) {
	v, err := c.Get(ctx, "crawl:last:"+source)
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	page, err := strconv.Atoi(v)
	if err != nil {
		return 0, nil
	}
	return page, nil
}
