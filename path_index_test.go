package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache "github.com/krisalay/object-cache"
)

func TestPutPathMakesBothLookupsHit(t *testing.T) {
	c := newTestCache(t, 10, 0)
	folder := newDoc("f1")

	require.NoError(t, c.PutPath("/a/b", folder, "k"))

	got, ok := c.GetByID("f1", "k")
	require.True(t, ok)
	assert.Same(t, folder, got)

	got, ok = c.GetByPath("/a/b", "k")
	require.True(t, ok)
	assert.Same(t, folder, got)

	_, ok = c.GetByPath("/a/c", "k")
	assert.False(t, ok, "unregistered path must miss")

	_, ok = c.GetByPath("/a/b", "other")
	assert.False(t, ok, "path alias is scoped to its context key")
}

func TestPathsAreComparedExactly(t *testing.T) {
	c := newTestCache(t, 10, 0)
	require.NoError(t, c.PutPath("/a/b", newDoc("f1"), "k"))

	_, ok := c.GetByPath("/a/b/", "k")
	assert.False(t, ok)
	_, ok = c.GetByPath("/A/B", "k")
	assert.False(t, ok)
}

func TestPutPathRejectsInvalidArguments(t *testing.T) {
	c := newTestCache(t, 10, 0)

	assert.ErrorIs(t, c.PutPath("/a", nil, "k"), cache.ErrNilObject)
	assert.ErrorIs(t, c.PutPath("/a", newDoc(""), "k"), cache.ErrInvalidObjectID)
	assert.ErrorIs(t, c.PutPath("", newDoc("f1"), "k"), cache.ErrInvalidPath)
	assert.Equal(t, 0, c.Len())
}

func TestDanglingPathAfterEvictionMisses(t *testing.T) {
	c := newTestCache(t, 1, 0)
	require.NoError(t, c.PutPath("/a", newDoc("f1"), "k"))
	require.NoError(t, c.Put("other", "k", newDoc("other")))

	_, ok := c.GetByPath("/a", "k")
	assert.False(t, ok)
}

func TestDanglingPathAfterExpiryMisses(t *testing.T) {
	clock := newFakeClock()
	c := newTestCache(t, 10, time.Second, cache.WithClock(clock.Now))
	require.NoError(t, c.PutPath("/a", newDoc("f1"), "k"))

	clock.Advance(time.Second)

	_, ok := c.GetByPath("/a", "k")
	assert.False(t, ok)
	_, ok = c.GetByID("f1", "k")
	assert.False(t, ok)
}

func TestDanglingPathResolvesAfterRePut(t *testing.T) {
	c := newTestCache(t, 10, 0)
	require.NoError(t, c.PutPath("/a", newDoc("f1"), "k"))
	require.Equal(t, 1, c.RemoveObject("f1"))

	_, ok := c.GetByPath("/a", "k")
	require.False(t, ok)

	fresh := newDoc("f1")
	require.NoError(t, c.Put("f1", "k", fresh))

	got, ok := c.GetByPath("/a", "k")
	require.True(t, ok)
	assert.Same(t, fresh, got)
}

func TestPathReadRefreshesRecency(t *testing.T) {
	c := newTestCache(t, 2, 0)
	require.NoError(t, c.PutPath("/a", newDoc("a"), "k"))
	require.NoError(t, c.Put("b", "k", newDoc("b")))

	_, ok := c.GetByPath("/a", "k")
	require.True(t, ok)

	require.NoError(t, c.Put("c", "k", newDoc("c")))

	_, ok = c.GetByPath("/a", "k")
	assert.True(t, ok)
	_, ok = c.GetByID("b", "k")
	assert.False(t, ok)
}

func TestPathIsNotCapacityAccounted(t *testing.T) {
	c := newTestCache(t, 2, 0)
	d := newDoc("f1")
	require.NoError(t, c.PutPath("/a", d, "k"))
	require.NoError(t, c.PutPath("/b", d, "k"))
	require.NoError(t, c.PutPath("/c", d, "k"))

	assert.Equal(t, 1, c.Len())
	for _, p := range []string{"/a", "/b", "/c"} {
		got, ok := c.GetByPath(p, "k")
		require.True(t, ok, p)
		assert.Same(t, d, got)
	}
}

func TestPathRebindsToNewObject(t *testing.T) {
	c := newTestCache(t, 10, 0)
	require.NoError(t, c.PutPath("/a", newDoc("old"), "k"))

	moved := newDoc("new")
	require.NoError(t, c.PutPath("/a", moved, "k"))

	got, ok := c.GetByPath("/a", "k")
	require.True(t, ok)
	assert.Same(t, moved, got)
}

func TestRemovePath(t *testing.T) {
	c := newTestCache(t, 10, 0)
	require.NoError(t, c.PutPath("/a", newDoc("f1"), "k"))

	assert.True(t, c.RemovePath("/a", "k"))
	assert.False(t, c.RemovePath("/a", "k"))

	_, ok := c.GetByPath("/a", "k")
	assert.False(t, ok)
	_, ok = c.GetByID("f1", "k")
	assert.True(t, ok, "removing an alias keeps its entry")
}

func TestClearDropsPaths(t *testing.T) {
	c := newTestCache(t, 10, 0)
	require.NoError(t, c.PutPath("/a", newDoc("f1"), "k"))

	c.Clear()
	require.NoError(t, c.Put("f1", "k", newDoc("f1")))

	_, ok := c.GetByPath("/a", "k")
	assert.False(t, ok)
}
