package metrics

import (
	"sync/atomic"

	"github.com/krisalay/object-cache/types"
)

// Counters keeps in-process totals. The zero value is ready to use.
type Counters struct {
	hits        atomic.Int64
	misses      atomic.Int64
	evictions   atomic.Int64
	expirations atomic.Int64
	entries     atomic.Int64
}

var _ types.Metrics = (*Counters)(nil)

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Expirations int64
	Entries     int64
}

func (c *Counters) Hit()       { c.hits.Add(1) }
func (c *Counters) Miss()      { c.misses.Add(1) }
func (c *Counters) Eviction()  { c.evictions.Add(1) }
func (c *Counters) Expire()    { c.expirations.Add(1) }
func (c *Counters) Size(n int) { c.entries.Store(int64(n)) }

// Snapshot reads every counter. Counters may move between reads.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		Expirations: c.expirations.Load(),
		Entries:     c.entries.Load(),
	}
}

// HitRatio returns hits / (hits + misses), or 0 before any lookup.
func (s Snapshot) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
