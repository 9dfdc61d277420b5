package cache

import "github.com/krisalay/object-cache/types"

// PutPath stores obj under (obj.ID(), contextKey) and records path as an
// alias for that id, atomically.
//
// Paths are compared byte for byte: "/a/b" and "/a/b/" are different keys.
func (c *ObjectCache[V]) PutPath(path string, obj V, contextKey string) error {
	if isNil(obj) {
		return ErrNilObject
	}
	id := obj.ID()
	if id == "" {
		return ErrInvalidObjectID
	}
	if path == "" {
		return ErrInvalidPath
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.putLocked(types.EntryKey{ObjectID: id, ContextKey: contextKey}, obj)
	c.paths[types.PathKey{Path: path, ContextKey: contextKey}] = id
	return nil
}

// GetByPath resolves (path, contextKey) to an object id and reads it through
// the primary store. The alias is left in place on a miss: if the same id is
// cached again under the same context key, the path resolves to it.
func (c *ObjectCache[V]) GetByPath(path, contextKey string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, ok := c.paths[types.PathKey{Path: path, ContextKey: contextKey}]
	if !ok {
		c.engine.Metrics.Miss()
		var zero V
		return zero, false
	}
	return c.getLocked(types.EntryKey{ObjectID: id, ContextKey: contextKey})
}

// RemovePath drops one alias without touching its target entry.
func (c *ObjectCache[V]) RemovePath(path, contextKey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := types.PathKey{Path: path, ContextKey: contextKey}
	if _, ok := c.paths[key]; !ok {
		return false
	}
	delete(c.paths, key)
	return true
}
