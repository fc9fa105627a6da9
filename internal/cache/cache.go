package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL is used when Set is called with a non-positive ttl
const DefaultTTL = 60 * time.Second

type entry struct {
	value  interface{}
	expiry time.Time
}

// Cache is a small in-memory key/value cache with per-entry expiry.
// Entries expire lazily: the deadline is checked on read and an expired
// entry found there is evicted on the spot. There is no background sweep.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time // swapped out in tests
}

// New creates an empty cache
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Set stores value under key for ttl. A non-positive ttl means DefaultTTL.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiry: c.now().Add(ttl)}
}

// Get returns the value under key, or false if absent or expired
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiry) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Has reports whether key is present and unexpired
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Clear empties the cache. With a pattern, only keys containing the
// pattern as a substring are evicted.
func (c *Cache) Clear(pattern ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(pattern) == 0 || pattern[0] == "" {
		c.entries = make(map[string]entry)
		return
	}

	for key := range c.entries {
		if strings.Contains(key, pattern[0]) {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of entries, including any not yet evicted
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cached returns the value under key if present, otherwise invokes
// producer, stores its result for ttl and returns it. The producer runs
// at most once per call; concurrent callers on a cold key may each
// invoke it, which is acceptable at this scale.
func Cached[T any](c *Cache, key string, ttl time.Duration, producer func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	result, err := producer()
	if err != nil {
		var zero T
		return zero, err
	}

	c.Set(key, result, ttl)
	return result, nil
}
