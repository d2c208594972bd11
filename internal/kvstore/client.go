// Package kvstore is the Redis-backed key-value store behind lead capture
// and the result cache. Values are JSON documents under plain string keys.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned for missing keys
var ErrNotFound = errors.New("key not found")

const scanCount = 100

// Client wraps a Redis connection with JSON helpers
type Client struct {
	rdb *redis.Client
}

// KV is one key and its raw value
type KV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func NewClient(ctx context.Context, addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("Connected to Redis")
	return &Client{rdb: rdb}, nil
}

// NewClientFromRedis wraps an existing connection
func NewClientFromRedis(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// Redis exposes the underlying connection
func (c *Client) Redis() *redis.Client {
	return c.rdb
}

// Get returns the raw value of key
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	v, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, nil
}

// GetJSON decodes the value of key into dest
func (c *Client) GetJSON(ctx context.Context, key string, dest any) error {
	v, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(v), dest); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// Set stores value under key. Strings are stored as-is, anything else as
// JSON.
func (c *Client) Set(ctx context.Context, key string, value any) error {
	return c.SetWithTTL(ctx, key, value, 0)
}

// SetWithTTL is Set with an expiry; 0 keeps the key forever
func (c *Client) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	var payload string
	switch v := value.(type) {
	case string:
		payload = v
	case []byte:
		payload = string(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		payload = string(data)
	}
	if err := c.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Client) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Incr atomically increments a counter and returns the new value
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}
	return n, nil
}

// Keys lists the keys matching a glob pattern using SCAN
func (c *Client) Keys(ctx context.Context, pattern string) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := c.rdb.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", pattern, err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// MGet returns the values of keys that exist, in key order
func (c *Client) MGet(ctx context.Context, keys []string) ([]KV, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to mget %d keys: %w", len(keys), err)
	}
	out := make([]KV, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		out = append(out, KV{Key: keys[i], Value: s})
	}
	return out, nil
}

// GetByPrefix returns every key starting with prefix and its value
func (c *Client) GetByPrefix(ctx context.Context, prefix string) ([]KV, error) {
	keys, err := c.Keys(ctx, escapeGlob(prefix)+"*")
	if err != nil {
		return nil, err
	}
	return c.MGet(ctx, keys)
}

// DeleteByPrefix removes every key starting with prefix in one pipeline
// and returns how many keys were removed
func (c *Client) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	keys, err := c.Keys(ctx, escapeGlob(prefix)+"*")
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}

	pipe := c.rdb.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to delete %d keys under %s: %w", len(keys), prefix, err)
	}
	return len(keys), nil
}

func escapeGlob(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
