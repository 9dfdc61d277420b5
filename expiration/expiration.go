// This file defines how cache entries expire over time.

package expiration

import (
	"time"

	"github.com/krisalay/object-cache/types"
)

/*
Strategy is the interface that all expiration rules must follow. Instead of hard-coding
expiration logic into the cache, we define a strategy so expiration behavior can be swapped easily.

Every method receives the current time explicitly; none of them reads the clock.
*/
type Strategy interface {

	// IsExpired checks if the entry is expired at now.
	IsExpired(*types.Stamp, time.Time) bool

	// OnAccess is called whenever a cache entry is read successfully.
	OnAccess(*types.Stamp, time.Time)

	// OnWrite is called whenever a cache entry is written or replaced.
	OnWrite(*types.Stamp, time.Time)
}

// New returns the strategy for a configured TTL, or nil when entries never expire.
func New(ttl time.Duration) Strategy {
	if ttl <= 0 {
		return nil
	}
	return &ExpireAfterWrite{TTL: ttl}
}
