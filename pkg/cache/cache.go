package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// defaultOperationTimeout is the timeout for individual Redis operations
	defaultOperationTimeout = 5 * time.Second
)

var (
	ErrMiss     = errors.New("key not found")
	ErrDisabled = errors.New("cache disabled")
)

type Cache struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
}

func NewCache(addr string, enable bool, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if !enable {
		return &Cache{enabled: false, ttl: ttl}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{
		client:  client,
		enabled: true,
		ttl:     ttl,
	}, nil
}

// NewWithClient wraps an existing client, used by tests and tooling that
// manage the connection themselves.
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{client: client, enabled: client != nil, ttl: ttl}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.enabled
}

func (c *Cache) TTL() time.Duration {
	if c == nil {
		return time.Hour
	}
	return c.ttl
}

// operationContext creates a context with timeout for Redis operations
func (c *Cache) operationContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), defaultOperationTimeout)
}

func (c *Cache) Set(key string, value interface{}, expiration time.Duration) error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, expiration).Err()
}

func (c *Cache) Get(key string, dest interface{}) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrMiss
	} else if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (c *Cache) Delete(keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) DeletePattern(pattern string) error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Cache) FlushAll() error {
	if !c.Enabled() {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	return c.client.FlushDB(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// DocumentKey is the cache key of a published document looked up by slug.
func DocumentKey(kind, slug string) string {
	return fmt.Sprintf("%s:slug:%s", kind, slug)
}

// ListKey is the cache key of the published listing of a document kind.
func ListKey(kind string) string {
	return fmt.Sprintf("%s:all", kind)
}

func (c *Cache) CacheDocument(kind, slug string, document interface{}) error {
	return c.Set(DocumentKey(kind, slug), document, c.TTL())
}

func (c *Cache) GetCachedDocument(kind, slug string, dest interface{}) error {
	return c.Get(DocumentKey(kind, slug), dest)
}

func (c *Cache) CacheList(kind string, documents interface{}) error {
	return c.Set(ListKey(kind), documents, c.TTL())
}

func (c *Cache) GetCachedList(kind string, dest interface{}) error {
	return c.Get(ListKey(kind), dest)
}

// InvalidateDocument drops the cached document for each given slug along with
// the kind's listing and the rendered homepage.
func (c *Cache) InvalidateDocument(kind string, slugs ...string) error {
	keys := []string{ListKey(kind), ListKey("homepage")}
	for _, slug := range slugs {
		if slug != "" {
			keys = append(keys, DocumentKey(kind, slug))
		}
	}
	return c.Delete(keys...)
}

// InvalidateKind drops every cached entry of a document kind.
func (c *Cache) InvalidateKind(kind string) error {
	return c.DeletePattern(kind + ":*")
}
