package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"workshop-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// RedisOverrideCache stores client-observed creation times as RFC3339Nano strings.
type RedisOverrideCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisOverrideCache(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisOverrideCache {
	return &RedisOverrideCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (c *RedisOverrideCache) key(id int64) string {
	return c.keyPrefix + strconv.FormatInt(id, 10)
}

func (c *RedisOverrideCache) Get(ctx context.Context, id int64) (*time.Time, error) {
	value, err := c.client.Get(ctx, c.key(id)).Result()
	if errs.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrapf(err, "get creation override %d", id)
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, errs.Wrapf(err, "parse creation override %d", id)
	}
	t = t.UTC()
	return &t, nil
}

func (c *RedisOverrideCache) Set(ctx context.Context, id int64, createdAt time.Time) error {
	err := c.client.Set(ctx, c.key(id), createdAt.UTC().Format(time.RFC3339Nano), c.ttl).Err()
	return errs.Wrapf(err, "set creation override %d", id)
}

func (c *RedisOverrideCache) Delete(ctx context.Context, id int64) error {
	return errs.Wrapf(c.client.Del(ctx, c.key(id)).Err(), "delete creation override %d", id)
}

// MemoryOverrideCache is used when no redis address is configured.
type MemoryOverrideCache struct {
	mu     sync.Mutex
	values map[int64]time.Time
}

func NewMemoryOverrideCache() *MemoryOverrideCache {
	return &MemoryOverrideCache{values: make(map[int64]time.Time)}
}

func (c *MemoryOverrideCache) Get(_ context.Context, id int64) (*time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.values[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (c *MemoryOverrideCache) Set(_ context.Context, id int64, createdAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[id] = createdAt.UTC()
	return nil
}

func (c *MemoryOverrideCache) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.values, id)
	return nil
}
