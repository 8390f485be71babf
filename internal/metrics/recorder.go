// Package metrics records compile and solve statistics as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the scheduler metrics. A nil *Recorder records nothing.
type Recorder struct {
	namespace string
	buckets   []float64
	registry  prometheus.Registerer

	solves              *prometheus.CounterVec
	solveDuration       prometheus.Histogram
	modelVariables      prometheus.Gauge
	modelClauses        prometheus.Gauge
	configurationErrors prometheus.Counter
}

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets, in seconds, for the solve duration.
func WithHistogramBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = buckets
		}
	}
}

// WithRegistry sets the registerer the metrics are created on.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(r *Recorder) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// NewRecorder creates and registers the scheduler metrics.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "meetscheduling",
		buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms .. ~4.4min
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)
	r.solves = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "solves_total",
		Help:      "Solve attempts by outcome (optimal, feasible, infeasible, unknown, error)",
	}, []string{"status"})

	r.solveDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "solve_duration_seconds",
		Help:      "Wall time of a solve attempt, compile included",
		Buckets:   r.buckets,
	})

	r.modelVariables = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "model_variables",
		Help:      "Boolean variables of the last compiled model",
	})

	r.modelClauses = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Name:      "model_clauses",
		Help:      "Clauses of the last compiled model",
	})

	r.configurationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "configuration_errors_total",
		Help:      "Meets rejected before compiling",
	})

	return r
}

// ObserveSolve records the outcome and size of a finished solve attempt.
func (r *Recorder) ObserveSolve(status string, elapsed time.Duration, variables uint64, clauses int) {
	if r == nil {
		return
	}
	r.solves.WithLabelValues(status).Inc()
	r.solveDuration.Observe(elapsed.Seconds())
	r.modelVariables.Set(float64(variables))
	r.modelClauses.Set(float64(clauses))
}

// ConfigurationError counts a rejected meet.
func (r *Recorder) ConfigurationError() {
	if r == nil {
		return
	}
	r.configurationErrors.Inc()
}
