package observers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/anggasct/post"
)

const (
	namespace = "post"
	subsystem = "workflow"
)

// MetricsObserver exports Prometheus metrics about post workflows.
//
// One observer can be shared by many posts; it is safe for concurrent use and
// keeps no per-post state. Time in state is measured from Post.StateEnteredAt.
type MetricsObserver struct {
	transitions   *prometheus.CounterVec
	stateEntries  *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	textBytes     prometheus.Counter
	errors        prometheus.Counter
	stateDuration *prometheus.HistogramVec

	now func() time.Time
}

// NewMetricsObserver creates a metrics observer and registers its collectors
// with reg. A nil registerer leaves the collectors unregistered.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	o := &MetricsObserver{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transitions_total",
				Help:      "Total number of state transitions",
			},
			[]string{"from", "to", "event"},
		),
		stateEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "state_entries_total",
				Help:      "Total number of times a state was entered",
			},
			[]string{"state"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ignored_operations_total",
				Help:      "Total number of operations without effect in the current state",
			},
			[]string{"state", "event"},
		),
		textBytes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "text_bytes_total",
				Help:      "Total number of bytes appended to drafts",
			},
		),
		errors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "errors_total",
				Help:      "Total number of malformed events and observer failures",
			},
		),
		stateDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "state_duration_seconds",
				Help:      "Time spent in a state before leaving it",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"state"},
		),
		now: time.Now,
	}

	if reg != nil {
		for _, c := range o.Collectors() {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return o, nil
}

// Collectors returns every collector owned by the observer
func (o *MetricsObserver) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		o.transitions, o.stateEntries, o.rejected, o.textBytes, o.errors, o.stateDuration,
	}
}

// OnTransition records transition metrics
func (o *MetricsObserver) OnTransition(p *post.Post, from, to string, event post.Event) {
	o.transitions.WithLabelValues(from, to, event.GetName()).Inc()
}

// OnStateEnter records state entry metrics
func (o *MetricsObserver) OnStateEnter(p *post.Post, state string) {
	o.stateEntries.WithLabelValues(state).Inc()
}

// OnStateExit records the time spent in the state being left
func (o *MetricsObserver) OnStateExit(p *post.Post, state string) {
	elapsed := o.now().Sub(p.StateEnteredAt())
	if elapsed < 0 {
		elapsed = 0
	}
	o.stateDuration.WithLabelValues(state).Observe(elapsed.Seconds())
}

// OnEventRejected records operations that had no effect
func (o *MetricsObserver) OnEventRejected(p *post.Post, event post.Event, reason string) {
	o.rejected.WithLabelValues(p.StateName(), event.GetName()).Inc()
}

// OnTextAdded records appended text volume
func (o *MetricsObserver) OnTextAdded(p *post.Post, text string) {
	o.textBytes.Add(float64(len(text)))
}

// OnError records error metrics
func (o *MetricsObserver) OnError(p *post.Post, err error) {
	o.errors.Inc()
}
