package kvstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"
)

// ResultCache stores JSON responses under hashed keys sharing one prefix,
// so a write to the underlying data can drop them all at once.
type ResultCache struct {
	client *Client
	prefix string
	ttl    time.Duration
}

func NewResultCache(client *Client, prefix string, ttl time.Duration) *ResultCache {
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &ResultCache{client: client, prefix: prefix, ttl: ttl}
}

// Key hashes the parts into a cache key
func (c *ResultCache) Key(parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return c.prefix + hex.EncodeToString(h[:])
}

// Get decodes a cached value into dest and reports whether it was present.
// A cache that cannot be read behaves as a miss.
func (c *ResultCache) Get(ctx context.Context, key string, dest any) bool {
	err := c.client.GetJSON(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, ErrNotFound) {
		log.Printf("[Cache] read %s failed: %v", key, err)
	}
	return false
}

func (c *ResultCache) Set(ctx context.Context, key string, value any) {
	if err := c.client.SetWithTTL(ctx, key, value, c.ttl); err != nil {
		log.Printf("[Cache] write %s failed: %v", key, err)
	}
}

// Invalidate drops every cached result
func (c *ResultCache) Invalidate(ctx context.Context) (int, error) {
	n, err := c.client.DeleteByPrefix(ctx, c.prefix)
	if err != nil {
		return 0, err
	}
	log.Printf("[Cache] invalidated %d keys under %s", n, c.prefix)
	return n, nil
}
