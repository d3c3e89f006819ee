package dispatcher

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the dispatcher's Prometheus collectors. A nil *Metrics is a no-op.
type Metrics struct {
	Submitted  prometheus.Counter
	Persisted  prometheus.Counter
	Failed     prometheus.Counter
	Dropped    prometheus.Counter
	CallerRuns prometheus.Counter
	Burst      prometheus.Counter
	Queued     prometheus.Gauge
	Duration   prometheus.Histogram
}

// NewMetrics creates and registers the dispatcher metrics
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weblog_dispatch_submitted_total",
			Help: "Total number of web logs handed to the dispatcher",
		}),
		Persisted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weblog_dispatch_persisted_total",
			Help: "Total number of web logs written to the store",
		}),
		Failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weblog_dispatch_failed_total",
			Help: "Total number of web logs the store rejected",
		}),
		Dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weblog_dispatch_dropped_total",
			Help: "Total number of web logs discarded on overflow",
		}),
		CallerRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weblog_dispatch_caller_runs_total",
			Help: "Total number of web logs persisted on the submitting goroutine",
		}),
		Burst: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "weblog_dispatch_burst_total",
			Help: "Total number of web logs persisted by burst workers",
		}),
		Queued: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "weblog_dispatch_queue_depth",
			Help: "Number of web logs waiting in the dispatch queue",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "weblog_persist_duration_seconds",
			Help:    "Time spent writing one web log to the store",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.Submitted,
		m.Persisted,
		m.Failed,
		m.Dropped,
		m.CallerRuns,
		m.Burst,
		m.Queued,
		m.Duration,
	)

	return m
}

func (m *Metrics) submitted() {
	if m != nil {
		m.Submitted.Inc()
	}
}

func (m *Metrics) persisted(seconds float64) {
	if m != nil {
		m.Persisted.Inc()
		m.Duration.Observe(seconds)
	}
}

func (m *Metrics) failed() {
	if m != nil {
		m.Failed.Inc()
	}
}

func (m *Metrics) dropped() {
	if m != nil {
		m.Dropped.Inc()
	}
}

func (m *Metrics) callerRan() {
	if m != nil {
		m.CallerRuns.Inc()
	}
}

func (m *Metrics) burst() {
	if m != nil {
		m.Burst.Inc()
	}
}

func (m *Metrics) enqueued() {
	if m != nil {
		m.Queued.Inc()
	}
}

func (m *Metrics) dequeued() {
	if m != nil {
		m.Queued.Dec()
	}
}
