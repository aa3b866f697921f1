package pail

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusConfig is a config of the Prometheus metrics provided by the collector.
//
// An instance can be created only by the [Prometheus] function. The zero value is invalid.
type PrometheusConfig struct {
	// Namespace of the metrics.
	Namespace string
	// Subsystem of the metrics.
	Subsystem string
	// Options for the buffer size gauge.
	Size prometheus.GaugeOpts
	// Options for the appended items counter.
	ItemsAppended prometheus.CounterOpts
	// Options for the flushed items counter.
	ItemsFlushed prometheus.CounterOpts
	// Options for the dropped items counter.
	ItemsDropped prometheus.CounterOpts
	// Options for the evicted items counter. Only registered for buffers which evict items.
	ItemsEvicted prometheus.CounterOpts
	// Options for the flush errors counter.
	FlushErrors prometheus.CounterOpts
	// Options for the flush duration histogram.
	FlushDuration prometheus.HistogramOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If registerer is nil,
// metrics will not be registered. Many default parameters can be configured by passing
// configuration functions.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "pail"
		subsystem = ""
	)

	c := PrometheusConfig{
		registerer: registerer,
		Namespace:  namespace,
		Subsystem:  subsystem,
		Size: prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "size",
			Help:      "Number of items in buffer after the last append or drain",
		},
		ItemsAppended: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "items_appended",
			Help:      "Number of items appended into buffer",
		},
		ItemsFlushed: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "items_flushed",
			Help:      "Number of drained items successfully flushed",
		},
		ItemsDropped: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "items_dropped",
			Help:      "Number of drained items dropped after exhausting flush retries",
		},
		ItemsEvicted: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "items_evicted",
			Help:      "Number of items overwritten by newer items in a full buffer",
		},
		FlushErrors: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "flush_errors",
			Help:      "Number of errors occurred during flushing",
		},
		FlushDuration: prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "flush_duration_seconds",
			Help:      "Duration of flushing including retries",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

// metrics builds the collectors. evicted is nil when the buffer never evicts items.
func (c *PrometheusConfig) metrics(evicted func() uint64) *metrics {
	m := metrics{
		size:          prometheus.NewGauge(c.Size),
		itemsAppended: prometheus.NewCounter(c.ItemsAppended),
		itemsFlushed:  prometheus.NewCounterVec(c.ItemsFlushed, []string{"trigger"}),
		itemsDropped:  prometheus.NewCounter(c.ItemsDropped),
		flushErrors:   prometheus.NewCounter(c.FlushErrors),
		flushDuration: prometheus.NewHistogram(c.FlushDuration),
	}

	collectors := []prometheus.Collector{
		m.size,
		m.itemsAppended,
		m.itemsFlushed,
		m.itemsDropped,
		m.flushErrors,
		m.flushDuration,
	}

	if evicted != nil {
		m.itemsEvicted = prometheus.NewCounterFunc(c.ItemsEvicted, func() float64 {
			return float64(evicted())
		})
		collectors = append(collectors, m.itemsEvicted)
	}

	if c.registerer != nil {
		c.registerer.MustRegister(collectors...)
	}

	return &m
}

type metrics struct {
	size          prometheus.Gauge
	itemsAppended prometheus.Counter
	itemsFlushed  *prometheus.CounterVec
	itemsDropped  prometheus.Counter
	itemsEvicted  prometheus.CounterFunc
	flushErrors   prometheus.Counter
	flushDuration prometheus.Histogram
}
