package types

// Object is the only thing the cache needs to know about what it stores.
// Values are held by reference; the cache never copies or mutates them.
type Object interface {
	ID() string
}
