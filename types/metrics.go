package types

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle. The cache will call these methods whenever something happens.

Methods are called while the cache lock is held, so implementations must not
call back into the cache.
*/
type Metrics interface {

	// Hit is called when a lookup returns a live entry.
	Hit()

	// Miss is called for every lookup that returns nothing: wrong id, wrong
	// context key, unknown path, expired or evicted entry.
	Miss()

	// Eviction is called when an entry is removed because the cache is full.
	Eviction()

	// Expire is called when an entry past its TTL is dropped, on read or when
	// a write needs its slot.
	Expire()

	// Size reports the number of entries held after a mutation.
	Size(int)
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

Callers that do not care about metrics get a cache that works without
nil checks on every event.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Eviction() {}
func (NoopMetrics) Expire()   {}
func (NoopMetrics) Size(int)  {}
