package cache

import "github.com/krisalay/object-cache/types"

/*
Cache defines the PUBLIC API of the object cache.
This is a contract that guarantees certain behaviors, without exposing internals.

Session code depends on this interface, not on ObjectCache, so tests can
substitute a recording fake.
*/
type Cache[V types.Object] interface {

	/*
		Put stores obj under (objectID, contextKey), replacing any previous
		snapshot for exactly that pair.

		BEHAVIOR:
		---------
		- Starts the TTL clock and marks the entry most recently used
		- Evicts the least recently used entry if capacity is exceeded
		- Never touches entries under other context keys
	*/
	Put(objectID, contextKey string, obj V) error

	// GetByID returns the live snapshot for exactly (objectID, contextKey).
	// A hit refreshes recency but never extends the TTL.
	GetByID(objectID, contextKey string) (V, bool)

	// PutPath stores obj like Put and records path as an alias for its id,
	// in one critical section.
	PutPath(path string, obj V, contextKey string) error

	// GetByPath resolves path to an id and then behaves like GetByID.
	// An alias whose target was evicted or expired is a miss.
	GetByPath(path, contextKey string) (V, bool)

	/*
		Remove drops the snapshot for (objectID, contextKey).

		This operation is idempotent:
		- Removing a non-existing entry is safe and returns false
	*/
	Remove(objectID, contextKey string) bool

	// RemoveObject drops every snapshot of objectID, under any context key,
	// and returns how many were removed.
	RemoveObject(objectID string) int

	// RemovePath drops one path alias. The target entry is left alone.
	RemovePath(path, contextKey string) bool

	// Clear drops all entries and all path aliases.
	Clear()

	// Len returns the number of stored entries, including expired ones not
	// yet detected by a read.
	Len() int
}

var _ Cache[types.Object] = (*ObjectCache[types.Object])(nil)
