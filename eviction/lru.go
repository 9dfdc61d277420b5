// This file implements LRU eviction.

package eviction

// lruNode represents ONE key inside the LRU structure. We use a doubly-linked list to track usage order.
type lruNode[K comparable] struct {
	key K

	// prev points toward the most recently used end
	prev *lruNode[K]

	// next points toward the least recently used end
	next *lruNode[K]
}

// lru is the concrete implementation of the LRU eviction policy.
//
// Ties cannot happen: every touch moves a node to the head, so two entries
// touched "at the same time" are still ordered by which call came first, and
// untouched entries stay in insertion order.
type lru[K comparable] struct {
	// nodes maps cache keys to their corresponding list nodes.
	nodes map[K]*lruNode[K]

	// head points to the MOST recently used key
	head *lruNode[K]

	// tail points to the LEAST recently used key
	tail *lruNode[K]
}

func newLRU[K comparable]() *lru[K] {
	return &lru[K]{nodes: make(map[K]*lruNode[K])}
}

// OnGet marks a key as recently used.
func (l *lru[K]) OnGet(k K) {
	if n, ok := l.nodes[k]; ok {
		l.moveToFront(n)
	}
}

// OnPut adds a new key at the front, or moves an overwritten key there.
func (l *lru[K]) OnPut(k K) {
	if n, ok := l.nodes[k]; ok {
		l.moveToFront(n)
		return
	}
	n := &lruNode[K]{key: k}
	l.nodes[k] = n
	l.addFront(n)
}

// Evict removes the LEAST recently used key, which always sits at the tail.
func (l *lru[K]) Evict() (K, bool) {
	if l.tail == nil {
		var zero K
		return zero, false
	}

	k := l.tail.key
	l.remove(l.tail)
	delete(l.nodes, k)
	return k, true
}

// Remove is called when a key is explicitly removed (not evicted due to capacity).
func (l *lru[K]) Remove(k K) {
	if n, ok := l.nodes[k]; ok {
		l.remove(n)
		delete(l.nodes, k)
	}
}

func (l *lru[K]) Len() int { return len(l.nodes) }

func (l *lru[K]) Reset() {
	l.nodes = make(map[K]*lruNode[K])
	l.head = nil
	l.tail = nil
}

// addFront adds a node to the front of the linked list. This marks the node as "most recently used".
func (l *lru[K]) addFront(n *lruNode[K]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n

	// If the list was empty, head and tail are the same
	if l.tail == nil {
		l.tail = n
	}
}

// remove unlinks a node, fixing up head and tail.
func (l *lru[K]) remove(n *lruNode[K]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}

func (l *lru[K]) moveToFront(n *lruNode[K]) {
	if l.head == n {
		return
	}
	l.remove(n)
	l.addFront(n)
}
