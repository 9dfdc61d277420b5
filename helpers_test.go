package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cache "github.com/krisalay/object-cache"
	"github.com/krisalay/object-cache/config"
	"github.com/krisalay/object-cache/eviction"
)

//
// ================= TEST OBJECTS =================
//

type doc struct {
	id   string
	name string
}

func (d *doc) ID() string { return d.id }

func newDoc(id string) *doc {
	return &doc{id: id, name: "name-" + id}
}

//
// ================= TEST CLOCK =================
//

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

//
// ================= HELPER: CREATE CACHE =================
//

func newTestCache(t testing.TB, capacity int, ttl time.Duration, opts ...cache.Option) *cache.ObjectCache[*doc] {
	t.Helper()

	c, err := cache.New[*doc](config.Config{
		Capacity: capacity,
		TTL:      ttl,
		Eviction: eviction.LRU,
	}, opts...)
	require.NoError(t, err)
	return c
}
