// Package listcache caches list pages in Redis under the canonical query string
// that produced them.
package listcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	versionKey = "list:version"
	localSize  = 256
	localTTL   = 15 * time.Second

	// fillTimeout bounds a shared fill, which outlives the caller that started it.
	fillTimeout = 30 * time.Second
	// BumpChannel carries version bumps to every process sharing the cache.
	BumpChannel = "list.bump"
)

// Cache wraps Redis based caching with versioning controls. Recently served
// pages are also kept in a small in-process LRU.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	local  *expirable.LRU[string, []byte]
}

// ErrDisabled is returned by operations that need a Redis backed cache.
var ErrDisabled = errors.New("listcache: caching disabled")

// New instantiates the cache helper. A nil client disables caching.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		local:  expirable.NewLRU[string, []byte](localSize, nil, min(ttl, localTTL)),
	}
}

// Enabled reports whether c is backed by Redis.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Version returns the current cache version, initialising when missing.
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, versionKey, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// Key composes the versioned cache key of one list page. query must be the
// canonical serialized form so equivalent URLs share an entry.
func (c *Cache) Key(ctx context.Context, entity, query string) (string, error) {
	if query == "" {
		query = "-"
	}
	base := strings.Join([]string{"list", entity, query}, ":")
	if c == nil || c.client == nil {
		return base, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", base, ver), nil
}

// LoadError wraps an error returned by a FetchJSON loader, as opposed to a
// cache failure.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return e.Err.Error() }

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError reports whether err came from the loader.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// FetchJSON loads a cached value into dest or populates it using the loader.
// Concurrent misses on the same key share one loader call. The shared call
// does not inherit the cancellation of whichever caller started it.
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("listcache: loader required")
	}
	if c == nil || c.client == nil {
		return load(ctx, dest, loader)
	}
	if raw, ok := c.local.Get(key); ok {
		return json.Unmarshal(raw, dest)
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		c.local.Add(key, payload)
		return json.Unmarshal(payload, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return err
	}
	ch := c.group.DoChan(key, func() (any, error) {
		fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fillTimeout)
		defer cancel()
		value, err := loader(fillCtx)
		if err != nil {
			return nil, &LoadError{Err: err}
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(fillCtx, key, raw, c.ttl).Err(); err != nil {
			return nil, err
		}
		c.local.Add(key, raw)
		return raw, nil
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return json.Unmarshal(res.Val.([]byte), dest)
	}
}

func load(ctx context.Context, dest any, loader func(context.Context) (any, error)) error {
	value, err := loader(ctx)
	if err != nil {
		return &LoadError{Err: err}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalidates the cache by incrementing the global version and publishing an event.
func (c *Cache) Bump(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return 0, err
	}
	c.local.Purge()
	return ver, c.client.Publish(ctx, BumpChannel, strconv.FormatInt(ver, 10)).Err()
}

// ListenForInvalidation drops the in-process entries whenever another process
// bumps the version. It returns once subscribed; the listener stops with ctx.
func (c *Cache) ListenForInvalidation(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	pubsub := c.client.Subscribe(ctx, BumpChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return err
	}
	go func() {
		defer func() { _ = pubsub.Close() }()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				c.local.Purge()
			}
		}
	}()
	return nil
}
