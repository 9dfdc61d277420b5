// This file implements FIFO eviction.

package eviction

type fifo[K comparable] struct {
	// queue keeps keys in the order they were inserted.
	// The front of the queue (index 0) is the oldest key.
	queue []K

	// set keeps track of which keys are currently in the queue.
	set map[K]struct{}
}

func newFIFO[K comparable]() *fifo[K] {
	return &fifo[K]{
		queue: make([]K, 0),
		set:   make(map[K]struct{}),
	}
}

// OnGet is a no-op: FIFO ignores reads completely.
func (f *fifo[K]) OnGet(K) {}

// OnPut tracks a key on first insertion only. Overwrites keep their place.
func (f *fifo[K]) OnPut(k K) {
	if _, ok := f.set[k]; ok {
		return
	}
	f.queue = append(f.queue, k)
	f.set[k] = struct{}{}
}

// Evict returns the oldest inserted key.
func (f *fifo[K]) Evict() (K, bool) {
	if len(f.queue) == 0 {
		var zero K
		return zero, false
	}
	k := f.queue[0]
	f.queue = f.queue[1:]
	delete(f.set, k)
	return k, true
}

// Remove drops a key while preserving the order of the rest.
func (f *fifo[K]) Remove(k K) {
	if _, ok := f.set[k]; !ok {
		return
	}

	delete(f.set, k)

	for i, v := range f.queue {
		if v == k {
			f.queue = append(f.queue[:i], f.queue[i+1:]...)
			break
		}
	}
}

func (f *fifo[K]) Len() int { return len(f.set) }

func (f *fifo[K]) Reset() {
	f.queue = make([]K, 0)
	f.set = make(map[K]struct{})
}
