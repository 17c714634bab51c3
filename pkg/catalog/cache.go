package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string, out any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type localEntry struct {
	expires time.Time
	data    []byte
}

// RedisCache keeps a short lived local copy in front of redis.
type RedisCache struct {
	Addr     string
	Password string
	DB       int
	LocalTTL time.Duration
	client   *redis.Client
	mu       sync.Mutex
	memCache map[string]localEntry
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{
		Addr:     addr,
		Password: password,
		DB:       db,
		LocalTTL: 10 * time.Second,
		client:   rdb,
		memCache: make(map[string]localEntry),
	}
}

func (c *RedisCache) local(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, found := c.memCache[key]
	if !found {
		return nil, false
	}
	if entry.expires.Before(time.Now()) {
		delete(c.memCache, key)
		return nil, false
	}
	return entry.data, true
}

func (c *RedisCache) remember(key string, data []byte, expiration time.Duration) {
	ttl := min(c.LocalTTL, expiration)
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.memCache[key] = localEntry{expires: time.Now().Add(ttl), data: data}
	c.mu.Unlock()
}

func (c *RedisCache) Get(ctx context.Context, key string, out any) error {
	if data, found := c.local(key); found {
		return json.Unmarshal(data, out)
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	if err = json.Unmarshal(data, out); err != nil {
		return err
	}
	if ttl, err := c.client.TTL(ctx, key).Result(); err == nil {
		c.remember(key, data, ttl)
	}
	return nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.remember(key, data, expiration)
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
