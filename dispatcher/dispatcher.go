// Package dispatcher persists web logs off the request path.
//
// A fixed set of workers drains a bounded queue. When the queue is full a
// limited number of burst workers absorb the spike; past that the overflow
// policy applies, which by default runs the write on the submitting
// goroutine so that no record is lost under load.
//
// Example:
//
//	d := dispatcher.New(repo, dispatcher.DefaultConfig(), logger, metrics)
//	defer d.Shutdown()
//
//	d.Submit(entry)
package dispatcher

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/blogem/weblog/models"
)

// OverflowPolicy decides what happens to a record when the queue is full
type OverflowPolicy string

const (
	// OverflowCallerRuns persists the record on the submitting goroutine
	OverflowCallerRuns OverflowPolicy = "caller-runs"
	// OverflowDiscard drops the record and logs it
	OverflowDiscard OverflowPolicy = "discard"
)

// Store is the persistence the dispatcher writes to
type Store interface {
	Create(ctx context.Context, entry models.WebLog) (int64, error)
}

// Config sizes the worker pool
type Config struct {
	// WorkerCount is the number of long-lived workers
	WorkerCount int
	// MaxWorkers bounds long-lived plus burst workers
	MaxWorkers    int
	QueueCapacity int
	Overflow      OverflowPolicy
	// ShutdownGrace bounds how long Shutdown waits for queued records
	ShutdownGrace time.Duration
	// JobTimeout bounds a single store write
	JobTimeout time.Duration
}

// DefaultConfig sizes the pool from the available CPUs
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		WorkerCount:   n,
		MaxWorkers:    2 * n,
		QueueCapacity: 200,
		Overflow:      OverflowCallerRuns,
		ShutdownGrace: 60 * time.Second,
		JobTimeout:    10 * time.Second,
	}
}

// withDefaults fills zero values from DefaultConfig
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.WorkerCount <= 0 {
		c.WorkerCount = def.WorkerCount
	}
	if c.MaxWorkers < c.WorkerCount {
		c.MaxWorkers = c.WorkerCount
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = def.QueueCapacity
	}
	if c.Overflow == "" {
		c.Overflow = def.Overflow
	}
	if c.ShutdownGrace <= 0 {
		c.ShutdownGrace = def.ShutdownGrace
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = def.JobTimeout
	}
	return c
}

// Validate checks the configuration
func (c Config) Validate() error {
	switch c.Overflow {
	case "", OverflowCallerRuns, OverflowDiscard:
	default:
		return fmt.Errorf("unknown overflow policy %q", c.Overflow)
	}
	if c.WorkerCount < 0 || c.MaxWorkers < 0 || c.QueueCapacity < 0 {
		return fmt.Errorf("worker and queue sizes must not be negative")
	}
	return nil
}

// Dispatcher is a bounded worker pool that writes web logs to a Store
type Dispatcher struct {
	cfg     Config
	store   Store
	logger  logrus.FieldLogger
	metrics *Metrics

	// mu guards closed and the queue against send-after-close
	mu     sync.RWMutex
	closed bool
	queue  chan models.WebLog
	burst  chan struct{}
	wg     sync.WaitGroup

	// inFlight counts pool writes that have left the queue but not finished
	inFlight atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
}

// New starts a dispatcher. metrics may be nil.
func New(store Store, cfg Config, logger logrus.FieldLogger, metrics *Metrics) *Dispatcher {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	d := &Dispatcher{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		metrics: metrics,
		queue:   make(chan models.WebLog, cfg.QueueCapacity),
		burst:   make(chan struct{}, cfg.MaxWorkers-cfg.WorkerCount),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	logger.WithFields(logrus.Fields{
		"workers":        cfg.WorkerCount,
		"max_workers":    cfg.MaxWorkers,
		"queue_capacity": cfg.QueueCapacity,
		"overflow":       cfg.Overflow,
	}).Info("web log dispatcher started")

	return d
}

// Submit hands a record to the pool. It only blocks when the overflow
// policy makes the caller run the write itself.
func (d *Dispatcher) Submit(entry models.WebLog) {
	d.metrics.submitted()

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		d.logger.WithFields(entryFields(entry)).Warn("dispatcher stopped, persisting web log on caller")
		d.runOnCaller(entry)
		return
	}

	select {
	case d.queue <- entry:
		d.metrics.enqueued()
		d.mu.RUnlock()
		return
	default:
	}

	// Queue is full: try a burst worker while still holding the read lock
	// so Shutdown cannot start waiting before wg.Add
	select {
	case d.burst <- struct{}{}:
		d.wg.Add(1)
		d.mu.RUnlock()
		d.metrics.burst()
		go func() {
			defer d.wg.Done()
			defer func() { <-d.burst }()
			d.persistInPool(entry)
		}()
		return
	default:
	}
	d.mu.RUnlock()

	switch d.cfg.Overflow {
	case OverflowDiscard:
		d.metrics.dropped()
		d.logger.WithFields(entryFields(entry)).Error("web log queue full, record discarded")
	default:
		d.runOnCaller(entry)
	}
}

// Shutdown stops accepting work and waits for queued records up to the
// configured grace period. Records still pending after that are abandoned.
func (d *Dispatcher) Shutdown() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(d.cfg.ShutdownGrace)
	defer timer.Stop()

	select {
	case <-done:
		d.cancel()
		d.logger.Info("web log dispatcher drained")
		return nil
	case <-timer.C:
		// Writes still running are cancelled along with the queued ones
		pending := len(d.queue) + int(d.inFlight.Load())
		d.cancel()
		d.logger.WithFields(logrus.Fields{
			"pending": pending,
			"grace":   d.cfg.ShutdownGrace.String(),
		}).Error("web log dispatcher shutdown timed out")
		return fmt.Errorf("dispatcher: %d pending web logs abandoned after %s", pending, d.cfg.ShutdownGrace)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for entry := range d.queue {
		d.metrics.dequeued()

		if d.ctx.Err() != nil {
			d.metrics.dropped()
			d.logger.WithFields(entryFields(entry)).Warn("web log abandoned at shutdown")
			continue
		}

		d.persistInPool(entry)
	}
}

// persistInPool writes a record on a pool goroutine, tracked for shutdown
func (d *Dispatcher) persistInPool(entry models.WebLog) {
	d.inFlight.Add(1)
	defer d.inFlight.Add(-1)
	d.persist(d.ctx, entry)
}

func (d *Dispatcher) runOnCaller(entry models.WebLog) {
	d.metrics.callerRan()
	d.persist(context.Background(), entry)
}

// persist writes one record. Failures are logged and never retried.
func (d *Dispatcher) persist(parent context.Context, entry models.WebLog) {
	defer func() {
		if r := recover(); r != nil {
			d.metrics.failed()
			d.logger.WithFields(entryFields(entry)).
				WithField("panic", r).
				WithField("stack", string(debug.Stack())).
				Error("panic while persisting web log")
		}
	}()

	ctx, cancel := context.WithTimeout(parent, d.cfg.JobTimeout)
	defer cancel()

	start := time.Now()
	id, err := d.store.Create(ctx, entry)
	if err != nil {
		d.metrics.failed()
		d.logger.WithFields(entryFields(entry)).WithError(err).Error("failed to persist web log")
		return
	}

	d.metrics.persisted(time.Since(start).Seconds())
	d.logger.WithFields(entryFields(entry)).WithField("id", id).Debug("web log persisted")
}

func entryFields(entry models.WebLog) logrus.Fields {
	return logrus.Fields{
		"actor":       entry.Actor,
		"operation":   entry.Operation,
		"description": entry.Description,
	}
}
