package cache

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/krisalay/object-cache/types"
)

type options struct {
	metrics types.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

// Option customizes an ObjectCache at construction.
type Option func(*options)

// WithMetrics sends cache events to m.
func WithMetrics(m types.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger sets the logger used for eviction, expiry and invalidation events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
