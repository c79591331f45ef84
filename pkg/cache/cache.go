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

	funnelPageTTL = 1 * time.Hour
)

var (
	ErrCacheDisabled = errors.New("cache disabled")
	ErrCacheMiss     = errors.New("key not found")
)

type Cache struct {
	client  *redis.Client
	enabled bool
}

// NewCache connects to Redis at url (redis://host:port/db or host:port).
// A disabled cache is returned without connecting.
func NewCache(url string, enable bool) (*Cache, error) {
	if !enable {
		return &Cache{enabled: false}, nil
	}

	options, err := redis.ParseURL(url)
	if err != nil {
		options = &redis.Options{Addr: url}
	}
	options.PoolSize = 10
	options.MinIdleConns = 5
	options.DialTimeout = 5 * time.Second
	options.ReadTimeout = 3 * time.Second
	options.WriteTimeout = 3 * time.Second

	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client, enabled: client != nil}
}

// Enabled reports whether operations reach Redis.
func (c *Cache) Enabled() bool {
	return c != nil && c.enabled
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
		return ErrCacheDisabled
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrCacheMiss
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

func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

func funnelPageIDKey(id uint) string {
	return fmt.Sprintf("funnel_page:%d", id)
}

func funnelPageSlugKey(slug string) string {
	return fmt.Sprintf("funnel_page:slug:%s", slug)
}

// CacheFunnelPage stores a page under its id and slug.
func (c *Cache) CacheFunnelPage(id uint, slug string, page interface{}) error {
	if err := c.Set(funnelPageIDKey(id), page, funnelPageTTL); err != nil {
		return err
	}
	if slug == "" {
		return nil
	}
	return c.Set(funnelPageSlugKey(slug), page, funnelPageTTL)
}

func (c *Cache) GetCachedFunnelPage(id uint, dest interface{}) error {
	return c.Get(funnelPageIDKey(id), dest)
}

func (c *Cache) GetCachedFunnelPageBySlug(slug string, dest interface{}) error {
	return c.Get(funnelPageSlugKey(slug), dest)
}

// InvalidateFunnelPage drops both cache entries of a page.
func (c *Cache) InvalidateFunnelPage(id uint, slug string) error {
	keys := []string{funnelPageIDKey(id)}
	if slug != "" {
		keys = append(keys, funnelPageSlugKey(slug))
	}
	return c.Delete(keys...)
}
