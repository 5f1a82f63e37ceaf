package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a two-tier read-through cache: in-process LRU in front of redis.
// L1 entries carry the same TTL as redis, so a value resident in the LRU
// cannot outlive its redis expiry.
type Cache struct {
	l1    *LRUCache
	l2    *redis.Client
	l2TTL time.Duration
}

type l1Entry struct {
	value     string
	expiresAt time.Time
}

func NewMultiTierCache(l1Capacity int, redisClient *redis.Client, l2TTL time.Duration) *Cache {
	return &Cache{
		l1:    NewLRUCache(l1Capacity),
		l2:    redisClient,
		l2TTL: l2TTL,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if val, found := c.l1Get(key); found {
		return val, true
	}

	val, err := c.l2.Get(ctx, key).Result()
	if err == nil {
		c.l1Set(key, val)
		return val, true
	}

	return "", false
}

func (c *Cache) Set(ctx context.Context, key, value string) error {
	c.l1Set(key, value)
	return c.l2.Set(ctx, key, value, c.l2TTL).Err()
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	val, found := c.Get(ctx, key)
	if !found {
		return false, nil
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, string(data))
}

func (c *Cache) l1Get(key string) (string, bool) {
	raw, found := c.l1.Get(key)
	if !found {
		return "", false
	}

	entry := raw.(l1Entry)
	if time.Now().After(entry.expiresAt) {
		c.l1.Delete(key)
		return "", false
	}

	return entry.value, true
}

func (c *Cache) l1Set(key, value string) {
	c.l1.Set(key, l1Entry{value: value, expiresAt: time.Now().Add(c.l2TTL)})
}
