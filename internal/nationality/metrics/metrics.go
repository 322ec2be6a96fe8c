package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	FactsUpserted      *prometheus.CounterVec
	FactsClosed        prometheus.Counter
	ValidationFailures prometheus.Counter
	RecomputeDuration  prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		FactsUpserted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wordsrecord_nationality_facts_upserted_total",
			Help: "Total number of nationality facts created or updated",
		}, []string{"operation"}),
		FactsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wordsrecord_nationality_facts_closed_total",
			Help: "Total number of nationality facts closed",
		}),
		ValidationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wordsrecord_nationality_validation_failures_total",
			Help: "Total number of fact writes rejected by rule validation",
		}),
		RecomputeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "wordsrecord_nationality_recompute_duration_seconds",
			Help:    "Duration of person nationality cache recomputation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementUpserted(created bool) {
	operation := "update"
	if created {
		operation = "create"
	}
	m.FactsUpserted.WithLabelValues(operation).Inc()
}

func (m *Metrics) IncrementClosed() {
	m.FactsClosed.Inc()
}

func (m *Metrics) IncrementValidationFailure() {
	m.ValidationFailures.Inc()
}

func (m *Metrics) ObserveRecompute(start time.Time) {
	m.RecomputeDuration.Observe(time.Since(start).Seconds())
}
