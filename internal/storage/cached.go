package storage

import (
	"context"
	"time"

	"github.com/jonathan/careerview/internal/cache"
)

// DefaultCacheTTL is the freshness window of the matches read cache.
const DefaultCacheTTL = 300 * time.Second

// CachedStore is a read-through cache over a Store. Only CategoryMatches is
// cached; writes and deletes to it drop the cached entry once the backend has
// been updated, and a read that raced with them is not cached.
type CachedStore struct {
	Store
	cache *cache.TTL[[]byte]
}

// NewCachedStore wraps inner. A nil clock uses time.Now.
func NewCachedStore(inner Store, ttl time.Duration, clock cache.Clock) *CachedStore {
	return &CachedStore{
		Store: inner,
		cache: cache.New[[]byte](ttl, clock),
	}
}

func (c *CachedStore) Get(ctx context.Context, category, id string) ([]byte, bool, error) {
	if category != CategoryMatches {
		return c.Store.Get(ctx, category, id)
	}
	key := Key(category, id)
	if blob, ok := c.cache.Get(key); ok {
		return append([]byte(nil), blob...), true, nil
	}

	gen := c.cache.Generation(key)
	blob, ok, err := c.Store.Get(ctx, category, id)
	if err != nil || !ok {
		return blob, ok, err
	}
	c.cache.SetIfGeneration(key, append([]byte(nil), blob...), gen)
	return blob, true, nil
}

func (c *CachedStore) Put(ctx context.Context, category, id string, blob []byte) error {
	err := c.Store.Put(ctx, category, id, blob)
	if category == CategoryMatches {
		c.cache.Delete(Key(category, id))
	}
	return err
}

func (c *CachedStore) Delete(ctx context.Context, category, id string) (bool, error) {
	existed, err := c.Store.Delete(ctx, category, id)
	if category == CategoryMatches {
		c.cache.Delete(Key(category, id))
	}
	return existed, err
}

// Purge drops every cached entry.
func (c *CachedStore) Purge() { c.cache.Purge() }

// Len returns the number of cached entries, fresh or not.
func (c *CachedStore) Len() int { return c.cache.Len() }
