package cache

import (
	"reflect"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/krisalay/object-cache/config"
	"github.com/krisalay/object-cache/engine"
	"github.com/krisalay/object-cache/eviction"
	"github.com/krisalay/object-cache/expiration"
	"github.com/krisalay/object-cache/types"
)

/*
ObjectCache is the main cache implementation.
This struct is the orchestrator that connects:
- the bounded store (entries + eviction policy)
- the path index
- the engine (clock, expiration, metrics, logging)

Everything below mu is only touched while mu is held.
*/
type ObjectCache[V types.Object] struct {
	mu sync.Mutex

	// entries is the primary index: (object id, context key) → snapshot.
	entries map[types.EntryKey]*types.CacheEntry[V]

	// paths is the secondary index: (path, context key) → object id.
	// It is not capacity-accounted and may hold dangling aliases.
	paths map[types.PathKey]string

	// eviction decides which entry goes when capacity is exceeded.
	eviction eviction.Policy[types.EntryKey]

	// engine contains the "rules" of the cache: clock, TTL, metrics, logging.
	engine *engine.CacheEngine

	// capacity is the maximum number of entries. 0 means unbounded.
	capacity int
}

// New validates cfg and builds an empty cache.
func New[V types.Object](cfg config.Config, opts ...Option) (*ObjectCache[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	eng := engine.NewCacheEngine(expiration.New(cfg.TTL), o.metrics, o.logger)
	eng.Now = o.now

	policy, err := config.ParseEviction(string(cfg.Eviction))
	if err != nil {
		return nil, err
	}

	return &ObjectCache[V]{
		entries:  make(map[types.EntryKey]*types.CacheEntry[V]),
		paths:    make(map[types.PathKey]string),
		eviction: eviction.NewEvictionPolicy[types.EntryKey](policy),
		engine:   eng,
		capacity: cfg.Capacity,
	}, nil
}

// Put stores obj under (objectID, contextKey).
func (c *ObjectCache[V]) Put(objectID, contextKey string, obj V) error {
	if objectID == "" {
		return ErrInvalidObjectID
	}
	if isNil(obj) {
		return ErrNilObject
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.putLocked(types.EntryKey{ObjectID: objectID, ContextKey: contextKey}, obj)
	return nil
}

// GetByID returns the live snapshot for exactly (objectID, contextKey).
func (c *ObjectCache[V]) GetByID(objectID, contextKey string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.getLocked(types.EntryKey{ObjectID: objectID, ContextKey: contextKey})
}

// Remove drops the snapshot for (objectID, contextKey).
func (c *ObjectCache[V]) Remove(objectID, contextKey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := types.EntryKey{ObjectID: objectID, ContextKey: contextKey}
	if _, ok := c.entries[key]; !ok {
		return false
	}
	c.deleteLocked(key)
	c.engine.Metrics.Size(len(c.entries))
	c.engine.Logger.Debug().
		Str("object_id", objectID).
		Str("context_key", contextKey).
		Msg("removed entry")
	return true
}

// RemoveObject drops every snapshot of objectID.
func (c *ObjectCache[V]) RemoveObject(objectID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key := range c.entries {
		if key.ObjectID == objectID {
			c.deleteLocked(key)
			n++
		}
	}
	if n > 0 {
		c.engine.Metrics.Size(len(c.entries))
		c.engine.Logger.Debug().
			Str("object_id", objectID).
			Int("removed", n).
			Msg("invalidated object")
	}
	return n
}

// Clear drops all entries and all path aliases.
func (c *ObjectCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[types.EntryKey]*types.CacheEntry[V])
	c.paths = make(map[types.PathKey]string)
	c.eviction.Reset()
	c.engine.Metrics.Size(0)
	c.engine.Logger.Debug().Msg("cleared cache")
}

// Len returns the number of stored entries.
func (c *ObjectCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// putLocked inserts or overwrites one entry and trims to capacity.
func (c *ObjectCache[V]) putLocked(key types.EntryKey, obj V) {
	now := c.engine.Now()

	ent, ok := c.entries[key]
	if !ok {
		ent = &types.CacheEntry[V]{Key: key}
		c.entries[key] = ent
	}
	ent.Value = obj
	c.engine.OnWrite(&ent.Stamp, now)
	c.eviction.OnPut(key)

	// Expired entries are not live and must not cost a live entry its slot.
	if c.capacity > 0 && len(c.entries) > c.capacity {
		c.dropExpiredLocked(now)
	}

	// The entry just written is the most recently used, so it is never
	// the victim while capacity >= 1.
	for c.capacity > 0 && len(c.entries) > c.capacity {
		victim, ok := c.eviction.Evict()
		if !ok {
			break
		}
		delete(c.entries, victim)
		c.engine.Evicted(victim)
	}

	c.engine.Metrics.Size(len(c.entries))
}

// getLocked is the single read path shared by GetByID and GetByPath.
func (c *ObjectCache[V]) getLocked(key types.EntryKey) (V, bool) {
	var zero V

	ent, ok := c.entries[key]
	if !ok {
		c.engine.Metrics.Miss()
		return zero, false
	}

	now := c.engine.Now()
	if c.engine.IsExpired(&ent.Stamp, now) {
		c.deleteLocked(key)
		c.engine.Expired(key, &ent.Stamp)
		c.engine.Metrics.Size(len(c.entries))
		c.engine.Metrics.Miss()
		return zero, false
	}

	c.engine.OnRead(&ent.Stamp, now)
	c.eviction.OnGet(key)
	c.engine.Metrics.Hit()
	return ent.Value, true
}

// dropExpiredLocked removes every entry past its TTL at now.
func (c *ObjectCache[V]) dropExpiredLocked(now time.Time) {
	if c.engine.Expiration == nil {
		return
	}
	for key, ent := range c.entries {
		if c.engine.IsExpired(&ent.Stamp, now) {
			c.deleteLocked(key)
			c.engine.Expired(key, &ent.Stamp)
		}
	}
}

func (c *ObjectCache[V]) deleteLocked(key types.EntryKey) {
	delete(c.entries, key)
	c.eviction.Remove(key)
}

// isNil reports whether v is nil, including a nil pointer held in V.
func isNil[V any](v V) bool {
	if any(v) == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
