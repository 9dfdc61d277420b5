package expiration

import (
	"time"

	"github.com/krisalay/object-cache/types"
)

/*
ExpireAfterWrite gives every entry a fixed lifetime measured from the moment
it was written. Reads move the recency clock only; the deadline set on write
never changes until the entry is written again.
*/
type ExpireAfterWrite struct {

	// TTL is how long an entry stays valid after it was written.
	TTL time.Duration
}

// IsExpired reports whether now has reached the deadline.
// An entry is gone AT the deadline, not just after it.
func (e *ExpireAfterWrite) IsExpired(st *types.Stamp, now time.Time) bool {
	return !st.ExpireAt.IsZero() && !now.Before(st.ExpireAt)
}

// OnAccess only refreshes recency.
func (e *ExpireAfterWrite) OnAccess(st *types.Stamp, now time.Time) {
	st.LastAccessedAt = now
}

// OnWrite starts both clocks. A rewrite is a new entry instance, so the
// deadline is always recomputed.
func (e *ExpireAfterWrite) OnWrite(st *types.Stamp, now time.Time) {
	st.CreatedAt = now
	st.LastAccessedAt = now
	if e.TTL > 0 {
		st.ExpireAt = now.Add(e.TTL)
	} else {
		st.ExpireAt = time.Time{}
	}
}
