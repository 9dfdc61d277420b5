/*
Package cache is an in-process object cache for a document-repository client
session.

Entries are addressed by (object id, context key). The context key is an
opaque token describing what was fetched (properties, renditions,
relationships), so a narrowly fetched snapshot is never returned to a caller
that asked for more. A secondary path index maps (path, context key) to an
object id and always resolves through the primary store.

The store is bounded by an optional capacity with least-recently-used
eviction, and entries optionally expire a fixed time after they were
written. Expiry is detected lazily on read. A single mutex guards the whole
instance, including the recency update a hit performs.

Misses are never errors: GetByID and GetByPath return (zero, false) for a
wrong id, wrong context key, unknown path, expired or evicted entry.
*/
package cache
