package pail

import (
	"time"

	"go.uber.org/zap"

	"github.com/teenjuna/pail/buffer"
	"github.com/teenjuna/pail/internal"
	"github.com/teenjuna/pail/retry"
)

type Option[Item any] = func(*config[Item])

// WithBuffer sets the buffer the collector appends to and drains from. Defaults to
// [buffer.Unbounded].
//
// The buffer may be shared with other producers which append to it directly.
func WithBuffer[Item any](buffer Buffer[Item]) Option[Item] {
	if buffer == nil {
		panic("buffer can't be nil")
	}
	return func(c *config[Item]) {
		c.buffer = buffer
	}
}

// WithFlushSize sets the buffer size at which the collector drains the buffer without waiting
// for the flush interval. Defaults to 1000.
func WithFlushSize[Item any](size int) Option[Item] {
	if size <= 0 {
		panic("flush size can't be < 1")
	}
	return func(c *config[Item]) {
		c.flushSize = size
	}
}

// WithFlushInterval sets the interval of periodic drains. Zero disables them. Defaults to 0.
func WithFlushInterval[Item any](interval time.Duration) Option[Item] {
	if interval < 0 {
		panic("flush interval can't be < 0")
	}
	return func(c *config[Item]) {
		c.flushInterval = interval
	}
}

// WithWorkers sets the number of goroutines which drain the buffer and call the flush
// function. Defaults to 1.
func WithWorkers[Item any](workers int) Option[Item] {
	if workers < 1 {
		panic("workers can't be < 1")
	}
	return func(c *config[Item]) {
		c.workers = workers
	}
}

// WithRetryPolicy sets the policy for failed flushes. Defaults to a single attempt.
func WithRetryPolicy[Item any](policy internal.RetryPolicy) Option[Item] {
	if policy == nil {
		panic("policy can't be nil")
	}
	return func(c *config[Item]) {
		c.retryPolicy = policy
	}
}

// WithPrometheus sets the Prometheus metrics config. See [Prometheus].
func WithPrometheus[Item any](prometheus *PrometheusConfig) Option[Item] {
	if prometheus == nil {
		panic("prometheus can't be nil")
	}
	return func(c *config[Item]) {
		c.prometheus = prometheus
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger[Item any](logger *zap.Logger) Option[Item] {
	if logger == nil {
		panic("logger can't be nil")
	}
	return func(c *config[Item]) {
		c.logger = logger
	}
}

type config[Item any] struct {
	buffer        Buffer[Item]
	retryPolicy   internal.RetryPolicy
	flushSize     int
	flushInterval time.Duration
	workers       int
	prometheus    *PrometheusConfig
	logger        *zap.Logger
}

func newConfig[Item any](options ...Option[Item]) *config[Item] {
	options = append([]Option[Item]{
		WithBuffer[Item](buffer.Unbounded[Item]()),
		WithRetryPolicy[Item](retry.Immediate(1)),
		WithFlushSize[Item](1000),
		WithWorkers[Item](1),
		WithPrometheus[Item](Prometheus(nil)),
		WithLogger[Item](zap.NewNop()),
	}, options...)

	cfg := config[Item]{}
	for _, opt := range options {
		opt(&cfg)
	}

	return &cfg
}
