// Package session reads repository objects through the object cache.
package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	cache "github.com/krisalay/object-cache"
	"github.com/krisalay/object-cache/object"
)

type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrInvalidArgument is returned for an empty object id or path.
	ErrInvalidArgument = constError("invalid argument")

	// ErrObjectNotFound is returned when the repository has no such object.
	ErrObjectNotFound = constError("object not found")
)

// Session materializes objects, consulting the cache before every fetch and
// populating it after every successful conversion.
type Session struct {
	cache   cache.Cache[*object.Object]
	fetcher Fetcher
	factory *object.Factory
	logger  zerolog.Logger

	// sf coalesces concurrent misses for the same (id or path, context key),
	// so a burst of callers costs one round trip.
	sf singleflight.Group
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = l.With().Str("component", "session").Logger()
	}
}

// New wires a session. c, f and factory must be non-nil.
func New(c cache.Cache[*object.Object], f Fetcher, factory *object.Factory, opts ...Option) *Session {
	s := &Session{
		cache:   c,
		fetcher: f,
		factory: factory,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetObject returns the object with id as seen through oc.
func (s *Session) GetObject(ctx context.Context, id string, oc object.OperationContext) (*object.Object, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: object id must be set", ErrInvalidArgument)
	}

	key := oc.CacheKey()
	if oc.CacheEnabled {
		if obj, ok := s.cache.GetByID(id, key); ok {
			return obj, nil
		}
	} else {
		s.logger.Debug().Str("object_id", id).Msg("cache bypassed")
	}

	return s.load(ctx, "id\x00"+id+"\x00"+key, func(ctx context.Context) (*object.Object, error) {
		data, err := s.fetcher.FetchObject(ctx, id, oc)
		if err != nil {
			return nil, err
		}
		obj, err := s.factory.ConvertObject(data, oc)
		if err != nil {
			return nil, err
		}
		if oc.CacheEnabled {
			if err := s.cache.Put(obj.ID(), key, obj); err != nil {
				return nil, err
			}
		}
		return obj, nil
	})
}

// GetObjectByPath returns the object at path as seen through oc.
func (s *Session) GetObjectByPath(ctx context.Context, path string, oc object.OperationContext) (*object.Object, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path must be set", ErrInvalidArgument)
	}

	key := oc.CacheKey()
	if oc.CacheEnabled {
		if obj, ok := s.cache.GetByPath(path, key); ok {
			return obj, nil
		}
	} else {
		s.logger.Debug().Str("path", path).Msg("cache bypassed")
	}

	return s.load(ctx, "path\x00"+path+"\x00"+key, func(ctx context.Context) (*object.Object, error) {
		data, err := s.fetcher.FetchObjectByPath(ctx, path, oc)
		if err != nil {
			return nil, err
		}
		obj, err := s.factory.ConvertObject(data, oc)
		if err != nil {
			return nil, err
		}
		if oc.CacheEnabled {
			if err := s.cache.PutPath(path, obj, key); err != nil {
				return nil, err
			}
		}
		return obj, nil
	})
}

// Invalidate drops every cached snapshot of id, e.g. after a remote update
// or delete. Path aliases pointing at id become dangling and miss.
func (s *Session) Invalidate(id string) int {
	n := s.cache.RemoveObject(id)
	s.logger.Debug().Str("object_id", id).Int("removed", n).Msg("invalidated object")
	return n
}

// ClearCache drops every cached object.
func (s *Session) ClearCache() {
	s.cache.Clear()
}

// load runs fetch once per key among concurrent callers.
//
// The shared fetch keeps the starting caller's context values but not its
// cancellation, so one caller giving up does not fail the others. Each caller
// stops waiting when its own ctx is done; the fetch then still completes and
// populates the cache for later callers.
func (s *Session) load(ctx context.Context, key string, fetch func(context.Context) (*object.Object, error)) (*object.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := s.sf.DoChan(key, func() (any, error) {
		return fetch(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		s.logger.Debug().Err(ctx.Err()).Msg("stopped waiting for fetch")
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.logger.Warn().Err(res.Err).Bool("shared", res.Shared).Msg("fetch failed")
			return nil, res.Err
		}
		s.logger.Debug().Bool("shared", res.Shared).Msg("fetched object")
		return res.Val.(*object.Object), nil
	}
}
