package eviction

import (
	"fmt"
	"strings"
)

/*
This file defines how the cache decides what to remove when it runs out of space.
*/

/*
Policy is the interface that all eviction strategies must follow.

The cache does NOT care how eviction works internally.
It only calls these methods, always while holding its own lock, so
implementations are not safe for concurrent use on their own.
*/
type Policy[K comparable] interface {

	// OnGet is called whenever a key is read from the cache.
	//
	// LRU moves the key to the most recently used position.
	// FIFO ignores reads.
	OnGet(K)

	// OnPut is called whenever a key is written, new or overwritten.
	// An overwrite counts as a touch for LRU.
	OnPut(K)

	// Remove is called when a key is explicitly removed
	// from the cache (not evicted).
	Remove(K)

	// Evict picks the victim when the cache is over capacity and stops
	// tracking it. ok is false when nothing is tracked.
	Evict() (k K, ok bool)

	// Len returns how many keys are tracked.
	Len() int

	// Reset drops all bookkeeping.
	Reset()
}

// PolicyType is a simple identifier for supported eviction strategies.
type PolicyType string

const (
	// LRU (Least Recently Used): Evicts the key that has NOT been written or read for the longest time.
	LRU PolicyType = "LRU"

	// FIFO (First In First Out): Evicts the oldest inserted key, regardless of access.
	// Unlike LRU, a read does not protect a key from the next eviction.
	FIFO PolicyType = "FIFO"
)

// ParsePolicyType accepts policy names case-insensitively. Empty means LRU.
func ParsePolicyType(s string) (PolicyType, error) {
	switch t := PolicyType(strings.ToUpper(strings.TrimSpace(s))); t {
	case "":
		return LRU, nil
	case LRU, FIFO:
		return t, nil
	default:
		return "", fmt.Errorf("unknown eviction policy %q", s)
	}
}

// NewEvictionPolicy is a small factory function.
// Given a PolicyType, it creates the correct eviction policy.
func NewEvictionPolicy[K comparable](t PolicyType) Policy[K] {
	switch t {
	case LRU, "":
		return newLRU[K]()
	case FIFO:
		return newFIFO[K]()
	default:
		panic("unknown eviction policy")
	}
}
