package cache_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	cache "github.com/krisalay/object-cache"
	"github.com/krisalay/object-cache/config"
	"github.com/krisalay/object-cache/eviction"
	"github.com/krisalay/object-cache/metrics"
)

//
// ================= BASIC OPERATIONS =================
//

func TestPutAndGetByID(t *testing.T) {
	c := newTestCache(t, 10, 0)
	d := newDoc("id1")

	require.NoError(t, c.Put("id1", "k1", d))

	got, ok := c.GetByID("id1", "k1")
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = c.GetByID("id1", "k2")
	assert.False(t, ok, "different context key must miss")

	_, ok = c.GetByID("id2", "k1")
	assert.False(t, ok, "different object id must miss")
}

func TestContextKeysAreIndependent(t *testing.T) {
	c := newTestCache(t, 10, 0)
	narrow := newDoc("id1")
	full := newDoc("id1")

	require.NoError(t, c.Put("id1", "k1", narrow))
	require.NoError(t, c.Put("id1", "k2", full))
	require.NoError(t, c.Put("id2", "k1", newDoc("id2")))

	got, ok := c.GetByID("id1", "k1")
	require.True(t, ok)
	assert.Same(t, narrow, got)

	got, ok = c.GetByID("id1", "k2")
	require.True(t, ok)
	assert.Same(t, full, got)

	assert.Equal(t, 3, c.Len())
}

func TestOverwriteReplacesValue(t *testing.T) {
	c := newTestCache(t, 10, 0)
	first := newDoc("id1")
	second := newDoc("id1")

	require.NoError(t, c.Put("id1", "k", first))
	require.NoError(t, c.Put("id1", "k", second))

	got, ok := c.GetByID("id1", "k")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, c.Len())
}

func TestStoresByReference(t *testing.T) {
	c := newTestCache(t, 10, 0)
	d := newDoc("id1")
	require.NoError(t, c.Put("id1", "k", d))

	d.name = "renamed"

	got, ok := c.GetByID("id1", "k")
	require.True(t, ok)
	assert.Equal(t, "renamed", got.name)
}

func TestPutRejectsInvalidArguments(t *testing.T) {
	c := newTestCache(t, 10, 0)

	assert.ErrorIs(t, c.Put("", "k", newDoc("x")), cache.ErrInvalidObjectID)
	assert.ErrorIs(t, c.Put("id1", "k", nil), cache.ErrNilObject)
	assert.Equal(t, 0, c.Len())
}

func TestEmptyContextKeyIsAValidPartition(t *testing.T) {
	c := newTestCache(t, 10, 0)
	require.NoError(t, c.Put("id1", "", newDoc("id1")))

	_, ok := c.GetByID("id1", "")
	assert.True(t, ok)
	_, ok = c.GetByID("id1", "k")
	assert.False(t, ok)
}

//
// ================= REMOVAL =================
//

func TestRemove(t *testing.T) {
	c := newTestCache(t, 10, 0)
	require.NoError(t, c.Put("id1", "k1", newDoc("id1")))
	require.NoError(t, c.Put("id1", "k2", newDoc("id1")))

	assert.True(t, c.Remove("id1", "k1"))
	assert.False(t, c.Remove("id1", "k1"), "second remove finds nothing")

	_, ok := c.GetByID("id1", "k1")
	assert.False(t, ok)
	_, ok = c.GetByID("id1", "k2")
	assert.True(t, ok, "other context key must survive")
}

func TestRemoveObjectDropsEveryContext(t *testing.T) {
	c := newTestCache(t, 10, 0)
	require.NoError(t, c.Put("id1", "k1", newDoc("id1")))
	require.NoError(t, c.Put("id1", "k2", newDoc("id1")))
	require.NoError(t, c.Put("id2", "k1", newDoc("id2")))

	assert.Equal(t, 2, c.RemoveObject("id1"))
	assert.Equal(t, 0, c.RemoveObject("id1"))
	assert.Equal(t, 1, c.Len())

	_, ok := c.GetByID("id2", "k1")
	assert.True(t, ok)
}

func TestClear(t *testing.T) {
	c := newTestCache(t, 3, 0)
	for i := range 3 {
		id := fmt.Sprintf("id%d", i)
		require.NoError(t, c.Put(id, "k", newDoc(id)))
	}

	c.Clear()
	assert.Equal(t, 0, c.Len())

	// The eviction bookkeeping is reset too: refilling to capacity evicts nothing.
	for i := range 3 {
		id := fmt.Sprintf("new%d", i)
		require.NoError(t, c.Put(id, "k", newDoc(id)))
	}
	assert.Equal(t, 3, c.Len())
	for i := range 3 {
		_, ok := c.GetByID(fmt.Sprintf("new%d", i), "k")
		assert.True(t, ok)
	}
}

//
// ================= CAPACITY & EVICTION =================
//

func TestLRUEvictsLeastRecentlyTouched(t *testing.T) {
	c := newTestCache(t, 10, 0)

	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("id%d", i)
		require.NoError(t, c.Put(id, "k", newDoc(id)))
	}
	for i := 1; i <= 10; i++ {
		_, ok := c.GetByID(fmt.Sprintf("id%d", i), "k")
		require.True(t, ok)
	}

	require.NoError(t, c.Put("id11", "k", newDoc("id11")))

	_, ok := c.GetByID("id1", "k")
	assert.False(t, ok, "id1 was least recently touched")
	for i := 2; i <= 11; i++ {
		_, ok := c.GetByID(fmt.Sprintf("id%d", i), "k")
		assert.True(t, ok, "id%d should be retained", i)
	}
	assert.Equal(t, 10, c.Len())
}

func TestReadProtectsFromEviction(t *testing.T) {
	c := newTestCache(t, 2, 0)
	require.NoError(t, c.Put("a", "k", newDoc("a")))
	require.NoError(t, c.Put("b", "k", newDoc("b")))

	_, ok := c.GetByID("a", "k")
	require.True(t, ok)

	require.NoError(t, c.Put("c", "k", newDoc("c")))

	_, ok = c.GetByID("b", "k")
	assert.False(t, ok)
	_, ok = c.GetByID("a", "k")
	assert.True(t, ok)
}

func TestOverwriteCountsAsTouch(t *testing.T) {
	c := newTestCache(t, 2, 0)
	require.NoError(t, c.Put("a", "k", newDoc("a")))
	require.NoError(t, c.Put("b", "k", newDoc("b")))
	require.NoError(t, c.Put("a", "k", newDoc("a")))
	require.NoError(t, c.Put("c", "k", newDoc("c")))

	_, ok := c.GetByID("b", "k")
	assert.False(t, ok)
	_, ok = c.GetByID("a", "k")
	assert.True(t, ok)
}

func TestEvictionIgnoresOtherContextOfSameObject(t *testing.T) {
	c := newTestCache(t, 2, 0)
	require.NoError(t, c.Put("id1", "k1", newDoc("id1")))
	require.NoError(t, c.Put("id1", "k2", newDoc("id1")))
	require.NoError(t, c.Put("id2", "k1", newDoc("id2")))

	_, ok := c.GetByID("id1", "k1")
	assert.False(t, ok, "oldest pair is evicted")
	_, ok = c.GetByID("id1", "k2")
	assert.True(t, ok, "same id under another context key is untouched")
}

func TestUnboundedCapacityNeverEvicts(t *testing.T) {
	counters := &metrics.Counters{}
	c := newTestCache(t, 0, 0, cache.WithMetrics(counters))

	for i := range 1000 {
		id := fmt.Sprintf("id%d", i)
		require.NoError(t, c.Put(id, "k", newDoc(id)))
	}
	assert.Equal(t, 1000, c.Len())
	assert.Zero(t, counters.Snapshot().Evictions)
}

func TestFIFOIgnoresReads(t *testing.T) {
	c, err := cache.New[*doc](config.Config{Capacity: 2, Eviction: eviction.FIFO})
	require.NoError(t, err)

	require.NoError(t, c.Put("a", "k", newDoc("a")))
	require.NoError(t, c.Put("b", "k", newDoc("b")))
	_, ok := c.GetByID("a", "k")
	require.True(t, ok)
	require.NoError(t, c.Put("c", "k", newDoc("c")))

	_, ok = c.GetByID("a", "k")
	assert.False(t, ok, "FIFO evicts the first inserted entry even after a read")
	_, ok = c.GetByID("b", "k")
	assert.True(t, ok)
}

//
// ================= TTL =================
//

func TestTTLExpiration(t *testing.T) {
	c := newTestCache(t, 10, 500*time.Millisecond)
	require.NoError(t, c.Put("id1", "k", newDoc("id1")))

	_, ok := c.GetByID("id1", "k")
	require.True(t, ok)

	time.Sleep(600 * time.Millisecond)

	_, ok = c.GetByID("id1", "k")
	assert.False(t, ok)
}

func TestTTLBoundaryIsInclusive(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, 10, time.Second, cache.WithClock(clock.Now))
	require.NoError(t, c.Put("id1", "k", newDoc("id1")))

	clock.Advance(time.Second - time.Nanosecond)
	_, ok := c.GetByID("id1", "k")
	assert.True(t, ok)

	clock.Advance(time.Nanosecond)
	_, ok = c.GetByID("id1", "k")
	assert.False(t, ok, "entry is gone once now == insertion + TTL")
}

func TestReadsDoNotExtendTTL(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, 10, time.Second, cache.WithClock(clock.Now))
	require.NoError(t, c.Put("id1", "k", newDoc("id1")))

	for range 3 {
		clock.Advance(300 * time.Millisecond)
		_, ok := c.GetByID("id1", "k")
		require.True(t, ok)
	}

	clock.Advance(200 * time.Millisecond)
	_, ok := c.GetByID("id1", "k")
	assert.False(t, ok)
}

func TestOverwriteRestartsTTL(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, 10, time.Second, cache.WithClock(clock.Now))
	require.NoError(t, c.Put("id1", "k", newDoc("id1")))

	clock.Advance(800 * time.Millisecond)
	require.NoError(t, c.Put("id1", "k", newDoc("id1")))

	clock.Advance(800 * time.Millisecond)
	_, ok := c.GetByID("id1", "k")
	assert.True(t, ok)
}

func TestExpiredEntryIsDroppedOnRead(t *testing.T) {
	clock := newFakeClock()
	counters := &metrics.Counters{}
	c := newTestCache(t, 10, time.Second, cache.WithClock(clock.Now), cache.WithMetrics(counters))
	require.NoError(t, c.Put("id1", "k", newDoc("id1")))

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, c.Len(), "expiry is detected lazily")

	_, ok := c.GetByID("id1", "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	snap := counters.Snapshot()
	assert.Equal(t, int64(1), snap.Expirations)
	assert.Equal(t, int64(1), snap.Misses)
	assert.Equal(t, int64(0), snap.Entries)
}

func TestPutAfterExpiryStartsNewEntry(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, 10, time.Second, cache.WithClock(clock.Now))
	require.NoError(t, c.Put("id1", "k", newDoc("id1")))

	clock.Advance(time.Second)
	_, ok := c.GetByID("id1", "k")
	require.False(t, ok)

	fresh := newDoc("id1")
	require.NoError(t, c.Put("id1", "k", fresh))
	got, ok := c.GetByID("id1", "k")
	require.True(t, ok)
	assert.Same(t, fresh, got)
}

func TestExpiredEntryDoesNotCostLiveSlot(t *testing.T) {
	clock := newFakeClock()
	counters := &metrics.Counters{}
	c := newTestCache(t, 2, time.Second, cache.WithClock(clock.Now), cache.WithMetrics(counters))

	require.NoError(t, c.Put("a", "k", newDoc("a")))
	clock.Advance(500 * time.Millisecond)
	require.NoError(t, c.Put("b", "k", newDoc("b")))
	clock.Advance(100 * time.Millisecond)
	_, ok := c.GetByID("a", "k")
	require.True(t, ok, "a is still live and now most recently used")

	clock.Advance(600 * time.Millisecond)
	require.NoError(t, c.Put("c", "k", newDoc("c")))

	_, ok = c.GetByID("b", "k")
	assert.True(t, ok, "b is live and must not be evicted while expired a holds a slot")
	_, ok = c.GetByID("c", "k")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())

	snap := counters.Snapshot()
	assert.Equal(t, int64(0), snap.Evictions)
	assert.Equal(t, int64(1), snap.Expirations)
}

func TestWriteDropsEveryExpiredEntryBeforeEvicting(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, 3, time.Second, cache.WithClock(clock.Now))

	require.NoError(t, c.Put("a", "k", newDoc("a")))
	require.NoError(t, c.Put("b", "k", newDoc("b")))
	clock.Advance(500 * time.Millisecond)
	require.NoError(t, c.Put("c", "k", newDoc("c")))
	clock.Advance(600 * time.Millisecond)

	require.NoError(t, c.Put("d", "k", newDoc("d")))

	assert.Equal(t, 2, c.Len(), "a and b expired, c and d live")
	_, ok := c.GetByID("c", "k")
	assert.True(t, ok)
}

//
// ================= METRICS =================
//

func TestMetricsCountHitsMissesEvictions(t *testing.T) {
	counters := &metrics.Counters{}
	c := newTestCache(t, 1, 0, cache.WithMetrics(counters))

	require.NoError(t, c.Put("a", "k", newDoc("a")))
	c.GetByID("a", "k")
	c.GetByID("a", "other")
	require.NoError(t, c.Put("b", "k", newDoc("b")))

	snap := counters.Snapshot()
	assert.Equal(t, int64(1), snap.Hits)
	assert.Equal(t, int64(1), snap.Misses)
	assert.Equal(t, int64(1), snap.Evictions)
	assert.Equal(t, int64(1), snap.Entries)
	assert.InDelta(t, 0.5, snap.HitRatio(), 1e-9)
}

//
// ================= CONFIGURATION =================
//

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want error
	}{
		{"negative capacity", config.Config{Capacity: -1}, config.ErrInvalidCapacity},
		{"negative ttl", config.Config{TTL: -time.Second}, config.ErrInvalidTTL},
		{"unknown eviction", config.Config{Eviction: "MRU"}, config.ErrInvalidEviction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := cache.New[*doc](tt.cfg)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, c)
		})
	}
}

func TestNewFromParameters(t *testing.T) {
	cfg, err := config.FromParameters(map[string]string{
		config.ParamCapacity: "2",
		config.ParamTTL:      "500",
	})
	require.NoError(t, err)

	c, err := cache.New[*doc](cfg)
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, c.Put(id, "k", newDoc(id)))
	}
	assert.Equal(t, 2, c.Len())
}

//
// ================= CONCURRENCY =================
//

func TestConcurrentPutsAreNotLost(t *testing.T) {
	c := newTestCache(t, 0, 0)

	const writers, perWriter = 16, 200
	var g errgroup.Group
	for w := range writers {
		g.Go(func() error {
			for i := range perWriter {
				id := fmt.Sprintf("id-%d", i)
				key := fmt.Sprintf("ctx-%d", w)
				if err := c.Put(id, key, newDoc(id)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, writers*perWriter, c.Len())
	for w := range writers {
		for i := range perWriter {
			_, ok := c.GetByID(fmt.Sprintf("id-%d", i), fmt.Sprintf("ctx-%d", w))
			require.True(t, ok)
		}
	}
}

func TestConcurrentReadsAndWritesRespectCapacity(t *testing.T) {
	c := newTestCache(t, 50, 0)

	var g errgroup.Group
	for w := range 8 {
		g.Go(func() error {
			for i := range 500 {
				id := fmt.Sprintf("id-%d-%d", w, i%100)
				if err := c.Put(id, "k", newDoc(id)); err != nil {
					return err
				}
				c.GetByID(fmt.Sprintf("id-%d-%d", w, (i+7)%100), "k")
				c.GetByPath("/nowhere", "k")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.LessOrEqual(t, c.Len(), 50)
}
