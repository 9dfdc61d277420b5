package types

import "time"

// EntryKey addresses one snapshot in the bounded store.
// The same ObjectID may appear under many ContextKeys; each pair is independent.
type EntryKey struct {
	ObjectID   string
	ContextKey string
}

// PathKey addresses one alias in the path index.
type PathKey struct {
	Path       string
	ContextKey string
}

/*
Stamp holds the two clocks every entry carries.

CreatedAt drives expiry and never moves after the write.
LastAccessedAt drives recency and moves on every hit.

Expiration strategies and the engine only ever see a Stamp, so they stay
pure functions over explicit timestamps.
*/
type Stamp struct {
	CreatedAt      time.Time
	LastAccessedAt time.Time
	ExpireAt       time.Time // zero => no TTL
}

// CacheEntry is mutated only while the owning cache holds its lock.
type CacheEntry[V any] struct {
	Key   EntryKey
	Value V
	Stamp
}
