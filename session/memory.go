package session

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/krisalay/object-cache/object"
)

// MemoryRepository is an in-process Fetcher backed by maps.
// It counts round trips so callers can see what the cache saved them.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*object.Data
	byPath  map[string]string
	fetches atomic.Int64

	// Latency is added to every fetch.
	Latency time.Duration
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[string]*object.Data),
		byPath: make(map[string]string),
	}
}

// Store adds or replaces an object. A non-empty cmis:path property also
// registers the object under that path.
func (r *MemoryRepository) Store(data *object.Data) error {
	id, _ := data.Properties[object.PropObjectID].(string)
	if id == "" {
		return object.ErrMissingObjectID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[id] = data
	if p, _ := data.Properties[object.PropPath].(string); p != "" {
		r.byPath[p] = id
	}
	return nil
}

// Delete removes an object and any path pointing at it.
func (r *MemoryRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byID, id)
	for p, target := range r.byPath {
		if target == id {
			delete(r.byPath, p)
		}
	}
}

// Fetches returns the number of round trips served so far.
func (r *MemoryRepository) Fetches() int64 {
	return r.fetches.Load()
}

// FetchObject implements Fetcher.
func (r *MemoryRepository) FetchObject(ctx context.Context, id string, oc object.OperationContext) (*object.Data, error) {
	if err := r.roundTrip(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %q", ErrObjectNotFound, id)
	}
	return project(data, oc), nil
}

// FetchObjectByPath implements Fetcher.
func (r *MemoryRepository) FetchObjectByPath(ctx context.Context, path string, oc object.OperationContext) (*object.Data, error) {
	if err := r.roundTrip(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPath[path]
	if !ok {
		return nil, fmt.Errorf("%w: path %q", ErrObjectNotFound, path)
	}
	return project(r.byID[id], oc), nil
}

func (r *MemoryRepository) roundTrip(ctx context.Context) error {
	r.fetches.Add(1)
	if r.Latency <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(r.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// project applies the property filter the way a repository would. The
// object id and type id are always returned.
func project(data *object.Data, oc object.OperationContext) *object.Data {
	out := &object.Data{BaseType: data.BaseType}
	filter := oc.FilterString()
	if filter == "*" {
		out.Properties = maps.Clone(data.Properties)
		return out
	}

	out.Properties = make(map[string]any)
	keep := map[string]bool{object.PropObjectID: true, object.PropObjectTypeID: true}
	for _, id := range strings.Split(filter, ",") {
		keep[id] = true
	}
	for id, v := range data.Properties {
		if keep[id] {
			out.Properties[id] = v
		}
	}
	return out
}
