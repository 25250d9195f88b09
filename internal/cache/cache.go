// Package cache provides a mutex-guarded key/value cache whose entries expire
// after a fixed freshness window.
package cache

import (
	"sync"
	"time"
)

// Clock returns the current time.
type Clock func() time.Time

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Generation identifies the state of one key. It changes whenever the key is
// set or deleted and whenever the cache is purged.
type Generation struct {
	epoch uint64
	seq   uint64
}

// TTL is a process-local cache. A zero ttl disables expiry.
type TTL[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     Clock
	entries map[string]entry[V]
	seqs    map[string]uint64
	epoch   uint64
}

// New returns a cache whose entries are fresh for ttl. A nil clock uses time.Now.
func New[V any](ttl time.Duration, clock Clock) *TTL[V] {
	if clock == nil {
		clock = time.Now
	}
	return &TTL[V]{
		ttl:     ttl,
		now:     clock,
		entries: make(map[string]entry[V]),
		seqs:    make(map[string]uint64),
	}
}

// Get returns the value for key if it is still fresh. Stale entries are evicted.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, stamped with the current time.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

func (c *TTL[V]) set(key string, value V) {
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
	c.seqs[key]++
}

// Generation returns the current generation of key. Take it before loading a
// value from a slower source and hand it to SetIfGeneration.
func (c *TTL[V]) Generation(key string) Generation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Generation{epoch: c.epoch, seq: c.seqs[key]}
}

// Unchanged reports whether key is still at gen.
func (c *TTL[V]) Unchanged(key string, gen Generation) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unchanged(key, gen)
}

func (c *TTL[V]) unchanged(key string, gen Generation) bool {
	return gen.epoch == c.epoch && gen.seq == c.seqs[key]
}

// SetIfGeneration stores value only if key was not set, deleted or purged
// since gen was taken. It reports whether the value was stored.
func (c *TTL[V]) SetIfGeneration(key string, value V, gen Generation) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.unchanged(key, gen) {
		return false
	}
	c.set(key, value)
	return true
}

// Delete removes key.
func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.seqs[key]++
}

// Purge removes every entry.
func (c *TTL[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
	c.seqs = make(map[string]uint64)
	c.epoch++
}

// Len counts entries, including stale ones not yet evicted.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
