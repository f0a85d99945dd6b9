// Package metrics provides optional, nil-safe prometheus instrumentation
// for the shipper's own operational health — queue depth, flush outcomes,
// spill activity. It never touches the content of the analytics events
// themselves; it only counts them.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// DropReason labels why Track discarded an event before it reached the
// buffer.
type DropReason string

const (
	DropReasonBufferFull DropReason = "buffer_full"
	DropReasonOversized  DropReason = "oversized"
)

// FlushOutcome labels the result of a flush attempt.
type FlushOutcome string

const (
	FlushOutcomeOK        FlushOutcome = "ok"
	FlushOutcomeRetryable FlushOutcome = "retryable"
	FlushOutcomeTerminal  FlushOutcome = "terminal"
)

// Metrics is nil-receiver safe: every method is a no-op on a nil
// *Metrics, so a client with no registerer configured pays only the cost
// of a nil check per call, mirroring the teacher's own Collector pattern.
type Metrics struct {
	eventsTracked   prometheus.Counter
	eventsDropped   *prometheus.CounterVec
	bufferDepth     prometheus.Gauge
	flushOutcomes   *prometheus.CounterVec
	consecutiveFail prometheus.Gauge
	spillWrites     prometheus.Counter
	spillLoads      prometheus.Counter
}

// New registers and returns a Metrics bound to reg. A nil reg (the
// default when WithMetricsRegisterer is not used) yields a nil *Metrics,
// whose methods are all safe no-ops.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}

	m := &Metrics{
		eventsTracked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "peekapi_events_tracked_total",
			Help: "Events accepted by Track.",
		}),
		eventsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "peekapi_events_dropped_total",
			Help: "Events dropped before reaching the buffer, by reason.",
		}, []string{"reason"}),
		bufferDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "peekapi_buffer_depth",
			Help: "Current number of events held in the in-memory buffer.",
		}),
		flushOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "peekapi_flush_outcomes_total",
			Help: "Flush attempts, by outcome.",
		}, []string{"outcome"}),
		consecutiveFail: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "peekapi_consecutive_failures",
			Help: "Current consecutive retryable flush failures.",
		}),
		spillWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "peekapi_spill_writes_total",
			Help: "Batches persisted to the local spill file.",
		}),
		spillLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "peekapi_spill_recovered_total",
			Help: "Events recovered from the spill file on startup.",
		}),
	}

	reg.MustRegister(
		m.eventsTracked, m.eventsDropped, m.bufferDepth,
		m.flushOutcomes, m.consecutiveFail, m.spillWrites, m.spillLoads,
	)
	return m
}

func (m *Metrics) IncTracked() {
	if m == nil {
		return
	}
	m.eventsTracked.Inc()
}

func (m *Metrics) IncDropped(reason DropReason) {
	if m == nil {
		return
	}
	m.eventsDropped.WithLabelValues(string(reason)).Inc()
}

func (m *Metrics) SetBufferDepth(depth int) {
	if m == nil {
		return
	}
	m.bufferDepth.Set(float64(depth))
}

func (m *Metrics) IncFlushOutcome(outcome FlushOutcome) {
	if m == nil {
		return
	}
	m.flushOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (m *Metrics) SetConsecutiveFailures(n int) {
	if m == nil {
		return
	}
	m.consecutiveFail.Set(float64(n))
}

func (m *Metrics) IncSpillWrite() {
	if m == nil {
		return
	}
	m.spillWrites.Inc()
}

func (m *Metrics) AddSpillLoaded(n int) {
	if m == nil {
		return
	}
	m.spillLoads.Add(float64(n))
}
