package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mp3-to-text/internal/app/strategy"
)

const namespace = "m2t"

// Outcome label values.
const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeInterrupted = "interrupted"
)

// Recorder collects per-strategy metrics in a private registry and can dump
// them in the node-exporter textfile format.
type Recorder struct {
	registry *prometheus.Registry
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strategy_attempts_total",
			Help:      "Strategy invocations by outcome.",
		}, []string{"strategy", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "strategy_duration_seconds",
			Help:      "Time spent in each strategy, recognition included.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"strategy"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Conversions by final outcome.",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(r.attempts, r.duration, r.runs)
	return r
}

// StrategyStarted implements strategy.Observer.
func (r *Recorder) StrategyStarted(index, total int, s strategy.Strategy) {}

// StrategyFinished implements strategy.Observer.
func (r *Recorder) StrategyFinished(index, total int, s strategy.Strategy, elapsed time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	r.attempts.WithLabelValues(s.Name, outcome).Inc()
	r.duration.WithLabelValues(s.Name).Observe(elapsed.Seconds())
}

// RecordRun counts a finished conversion.
func (r *Recorder) RecordRun(outcome string) {
	r.runs.WithLabelValues(outcome).Inc()
}

// WriteTextfile atomically writes all metrics to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

var _ strategy.Observer = (*Recorder)(nil)
