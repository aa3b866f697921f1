package pail

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teenjuna/pail/internal"
	"github.com/teenjuna/pail/retry"
)

var (
	ErrClosed = errors.New("collector is closed")

	errNoAttempts = errors.New("retry policy allowed no attempts")
)

const (
	triggerSize     = "size"
	triggerInterval = "interval"
	triggerManual   = "manual"
	triggerClose    = "close"
)

// FlushFunc receives every non-empty batch drained from the buffer. The batch is owned by the
// function. A returned error makes the collector retry the batch according to its
// [RetryPolicy].
type FlushFunc[Item any] = func(ctx context.Context, batch []Item) error

// Collector appends items into a [Buffer] and drains it in the background.
//
// The buffer is drained when an append makes it reach the flush size, on every flush interval,
// on [Collector.Flush] and once more on [Collector.Close].
type Collector[Item any] struct {
	cfg     *config[Item]
	metrics *metrics
	logger  *zap.Logger

	// gate orders appends before the final drain of Close.
	gate   sync.RWMutex
	closed bool

	// sizeMu keeps the size gauge in the order of the buffer operations that produced it.
	sizeMu sync.Mutex

	full  chan struct{}
	flush chan chan error

	workerCtx  context.Context
	workerStop func()
	group      *errgroup.Group

	flushCtx  context.Context
	flushStop func()
	flushFunc FlushFunc[Item]
}

// New creates a collector and starts its workers.
func New[Item any](flushFunc FlushFunc[Item], options ...Option[Item]) *Collector[Item] {
	if flushFunc == nil {
		panic("flush func can't be nil")
	}

	cfg := newConfig(options...)

	var evicted func() uint64
	if b, ok := cfg.buffer.(interface{ Evicted() uint64 }); ok {
		evicted = b.Evicted
	}

	var (
		workerCtx, workerStop = context.WithCancel(context.Background())
		flushCtx, flushStop   = context.WithCancel(context.Background())
	)

	collector := Collector[Item]{
		cfg:     cfg,
		metrics: cfg.prometheus.metrics(evicted),
		logger:  cfg.logger,

		full:  make(chan struct{}, cfg.workers),
		flush: make(chan chan error),

		workerCtx:  workerCtx,
		workerStop: workerStop,
		group:      new(errgroup.Group),

		flushCtx:  flushCtx,
		flushStop: flushStop,
		flushFunc: flushFunc,
	}

	for range cfg.workers {
		collector.group.Go(collector.worker)
	}

	return &collector
}

// Append adds items to the buffer and returns its size after the append. It never blocks on
// the flush function.
//
// Returns [ErrClosed] if the collector has been closed.
func (c *Collector[Item]) Append(items ...Item) (int, error) {
	c.gate.RLock()
	defer c.gate.RUnlock()

	if c.closed {
		return 0, ErrClosed
	}

	c.sizeMu.Lock()
	size := c.cfg.buffer.Append(items)
	c.metrics.size.Set(float64(size))
	c.sizeMu.Unlock()

	c.metrics.itemsAppended.Add(float64(len(items)))

	if size >= c.cfg.flushSize {
		notify(c.full, struct{}{})
	}

	return size, nil
}

// Flush drains the buffer and waits until the drained batch is flushed. Returns nil if the
// buffer was empty and the flush error if the batch was dropped.
func (c *Collector[Item]) Flush(ctx context.Context) error {
	resCh := make(chan error, 1)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.workerCtx.Done():
		return ErrClosed
	case c.flush <- resCh:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-resCh:
		return err
	}
}

// Close stops the workers, flushes the items left in the buffer and cancels the context
// passed to the flush function.
//
// Workers stop retrying as soon as Close is called: a batch which is still failing at that
// point is dropped. The items left in the buffer are flushed with a single attempt, whatever
// the retry policy, so Close returns even if the flush function keeps failing.
//
// Returns [ErrClosed] if the collector has already been closed.
func (c *Collector[Item]) Close() error {
	c.gate.Lock()
	if c.closed {
		c.gate.Unlock()
		return ErrClosed
	}
	c.closed = true
	c.gate.Unlock()

	errs := make([]error, 0)

	// Signal to workers that they must stop after the batch they are flushing.
	c.workerStop()
	if err := c.group.Wait(); err != nil {
		errs = append(errs, fmt.Errorf("workers: %w", err))
	}

	if err := c.drain(triggerClose, retry.Immediate(1), context.Background()); err != nil {
		errs = append(errs, fmt.Errorf("final flush: %w", err))
	}

	c.flushStop()

	return errors.Join(errs...)
}

func (c *Collector[Item]) worker() error {
	var tick <-chan time.Time
	if c.cfg.flushInterval > 0 {
		ticker := time.NewTicker(c.cfg.flushInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		var (
			trigger string
			resCh   chan error
		)
		select {
		case <-c.workerCtx.Done():
			return nil
		case <-c.full:
			trigger = triggerSize
		case <-tick:
			trigger = triggerInterval
		case resCh = <-c.flush:
			trigger = triggerManual
		}

		// Whatever is left is flushed by Close.
		if c.workerCtx.Err() != nil {
			notify(resCh, ErrClosed)
			return nil
		}

		err := c.drain(trigger, c.cfg.retryPolicy.Derive(), c.workerCtx)
		notify(resCh, err)

		if err != nil {
			sleep(c.workerCtx, c.cfg.retryPolicy.Cooldown())
		}
	}
}

// drain flushes everything currently stored in the buffer as one batch. Attempts are made
// while policy allows them under attemptCtx.
func (c *Collector[Item]) drain(
	trigger string,
	policy internal.RetryPolicy,
	attemptCtx context.Context,
) error {
	c.sizeMu.Lock()
	batch := c.cfg.buffer.GetAndClear()
	c.metrics.size.Set(0)
	c.sizeMu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	var (
		logger = c.logger.With(
			zap.String("batch", internal.NewBatchID()),
			zap.String("trigger", trigger),
			zap.Int("items", len(batch)),
		)
		started = time.Now()
		ok      bool
		err     error
	)
	for policy.Attempt(attemptCtx) {
		if err = c.flushFunc(c.flushCtx, batch); err == nil {
			ok = true
			break
		}
		c.metrics.flushErrors.Inc()
		logger.Warn("flush failed", zap.Error(err))
	}

	elapsed := time.Since(started)
	c.metrics.flushDuration.Observe(elapsed.Seconds())

	if !ok {
		if err == nil {
			err = attemptCtx.Err()
		}
		if err == nil {
			err = errNoAttempts
		}
		c.metrics.itemsDropped.Add(float64(len(batch)))
		logger.Error("batch dropped", zap.Error(err), zap.Duration("elapsed", elapsed))
		return fmt.Errorf("flush: %w", err)
	}

	c.metrics.itemsFlushed.WithLabelValues(trigger).Add(float64(len(batch)))
	logger.Debug("batch flushed", zap.Duration("elapsed", elapsed))

	return nil
}

func notify[T any](ch chan T, v T) {
	if ch != nil {
		select {
		case ch <- v:
		default:
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
