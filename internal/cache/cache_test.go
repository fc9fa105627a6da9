package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCache returns a cache with a controllable clock
func testCache() (*Cache, *time.Time) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }
	return c, &now
}

func TestSetGet(t *testing.T) {
	c, _ := testCache()

	c.Set("tasks:1", "hello", time.Minute)

	v, ok := c.Get("tasks:1")
	require.True(t, ok)
	assert.Equal(t, "hello", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c, now := testCache()

	c.Set("k", 42, 30*time.Second)
	assert.True(t, c.Has("k"))

	*now = now.Add(31 * time.Second)
	_, ok := c.Get("k")
	assert.False(t, ok)
	// the expired entry was evicted on read
	assert.Zero(t, c.Len())
}

func TestDefaultTTL(t *testing.T) {
	c, now := testCache()

	c.Set("k", 1, 0)

	*now = now.Add(59 * time.Second)
	assert.True(t, c.Has("k"))

	*now = now.Add(2 * time.Second)
	assert.False(t, c.Has("k"))
}

func TestClearPattern(t *testing.T) {
	c, _ := testCache()
	c.Set("tasks:1", 1, time.Minute)
	c.Set("tasks:2", 2, time.Minute)
	c.Set("reports:progress", 3, time.Minute)

	c.Clear("tasks")
	assert.False(t, c.Has("tasks:1"))
	assert.False(t, c.Has("tasks:2"))
	assert.True(t, c.Has("reports:progress"))

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestCached(t *testing.T) {
	c, now := testCache()

	calls := 0
	produce := func() (int, error) {
		calls++
		return calls, nil
	}

	v, err := Cached(c, "k", time.Minute, produce)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// warm hit, producer not invoked again
	v, err = Cached(c, "k", time.Minute, produce)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, calls)

	// after expiry the producer runs again
	*now = now.Add(2 * time.Minute)
	v, err = Cached(c, "k", time.Minute, produce)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestCachedErrorNotStored(t *testing.T) {
	c, _ := testCache()

	_, err := Cached(c, "k", time.Minute, func() (int, error) {
		return 0, errors.New("boom")
	})
	require.Error(t, err)
	assert.False(t, c.Has("k"))
}
