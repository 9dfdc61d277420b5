package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/krisalay/object-cache/expiration"
	"github.com/krisalay/object-cache/types"
)

/*
CacheEngine is the "brain" of the cache system.
It is responsible for the "behavior" of the cache, NOT storage.
This acts as the policy layer.

It decides:
- What time it is
- When data is expired
- How timestamps move on reads/writes
- How events are recorded and logged

It does NOT:
- Store data
- Handle locking
- Decide eviction order
*/
type CacheEngine struct {

	// Expiration controls when a cache entry should be considered “too old”.
	// If this is nil, entries never expire based on time.
	Expiration expiration.Strategy

	// Metrics is how we keep track of what the cache is doing.
	Metrics types.Metrics

	// Logger receives debug events for evictions, expirations and invalidations.
	Logger zerolog.Logger

	// Now is the clock. Tests replace it to move time without sleeping.
	Now func() time.Time
}

/*
NewCacheEngine creates a CacheEngine.

Metrics is always non-nil and the clock defaults to time.Now, so the rest of
the code never checks for either.
*/
func NewCacheEngine(
	exp expiration.Strategy,
	metrics types.Metrics,
	logger zerolog.Logger,
) *CacheEngine {
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}

	return &CacheEngine{
		Expiration: exp,
		Metrics:    metrics,
		Logger:     logger.With().Str("component", "object-cache").Logger(),
		Now:        time.Now,
	}
}

// IsExpired returns false if no expiration strategy is configured.
func (e *CacheEngine) IsExpired(st *types.Stamp, now time.Time) bool {
	return e.Expiration != nil && e.Expiration.IsExpired(st, now)
}

// OnRead is called every time the cache successfully returns a value.
func (e *CacheEngine) OnRead(st *types.Stamp, now time.Time) {
	if e.Expiration != nil {
		e.Expiration.OnAccess(st, now)
		return
	}
	st.LastAccessedAt = now
}

// OnWrite is called whenever an entry is written to the cache.
func (e *CacheEngine) OnWrite(st *types.Stamp, now time.Time) {
	if e.Expiration != nil {
		e.Expiration.OnWrite(st, now)
		return
	}
	st.CreatedAt = now
	st.LastAccessedAt = now
	st.ExpireAt = time.Time{}
}

// Evicted records a capacity eviction.
func (e *CacheEngine) Evicted(key types.EntryKey) {
	e.Metrics.Eviction()
	e.Logger.Debug().
		Str("object_id", key.ObjectID).
		Str("context_key", key.ContextKey).
		Msg("evicted entry over capacity")
}

// Expired records an entry dropped past its TTL, on read or to free a slot.
func (e *CacheEngine) Expired(key types.EntryKey, st *types.Stamp) {
	e.Metrics.Expire()
	e.Logger.Debug().
		Str("object_id", key.ObjectID).
		Str("context_key", key.ContextKey).
		Time("expired_at", st.ExpireAt).
		Msg("dropped expired entry")
}
