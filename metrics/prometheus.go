// Package metrics provides implementations of types.Metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/krisalay/object-cache/types"
)

// Prometheus exports cache events as Prometheus metrics.
type Prometheus struct {
	Hits        prometheus.Counter
	Misses      prometheus.Counter
	Evictions   prometheus.Counter
	Expirations prometheus.Counter
	Entries     prometheus.Gauge
}

var _ types.Metrics = (*Prometheus)(nil)

// NewPrometheus registers the cache metrics on reg under namespace.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Prometheus{
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "object_cache",
			Name:      "hits_total",
			Help:      "Total number of lookups answered from the cache",
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "object_cache",
			Name:      "misses_total",
			Help:      "Total number of lookups that required a remote fetch",
		}),
		Evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "object_cache",
			Name:      "evictions_total",
			Help:      "Total number of entries evicted for capacity",
		}),
		Expirations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "object_cache",
			Name:      "expirations_total",
			Help:      "Total number of entries found expired on read",
		}),
		Entries: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "object_cache",
			Name:      "entries",
			Help:      "Number of entries currently held",
		}),
	}
}

func (p *Prometheus) Hit()       { p.Hits.Inc() }
func (p *Prometheus) Miss()      { p.Misses.Inc() }
func (p *Prometheus) Eviction()  { p.Evictions.Inc() }
func (p *Prometheus) Expire()    { p.Expirations.Inc() }
func (p *Prometheus) Size(n int) { p.Entries.Set(float64(n)) }
