package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPLatency      *prometheus.HistogramVec
	ScoringRequests  *prometheus.CounterVec
	ModelInferences  *prometheus.CounterVec
	SnapshotRescores prometheus.Counter
	SnapshotRows     prometheus.Gauge
}

// NewMetrics creates and registers the Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "risk_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "risk_http_request_latency_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ScoringRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "risk_scoring_requests_total",
				Help: "Total number of ad-hoc customer scoring requests.",
			},
			[]string{"tier", "result"},
		),
		ModelInferences: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "risk_model_inferences_total",
				Help: "Total number of delinquency model inferences.",
			},
			[]string{"result"},
		),
		SnapshotRescores: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "risk_snapshot_rescores_total",
				Help: "Total number of portfolio snapshot republishes.",
			},
		),
		SnapshotRows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "risk_snapshot_rows",
				Help: "Number of customer rows in the current snapshot.",
			},
		),
	}
}

// RecordHTTPRequest records counter and latency for a completed request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
	m.HTTPLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordScoring records the outcome of an ad-hoc scoring request.
func (m *Metrics) RecordScoring(tier, result string) {
	m.ScoringRequests.WithLabelValues(tier, result).Inc()
}

// RecordInference records a model inference attempt.
func (m *Metrics) RecordInference(result string) {
	m.ModelInferences.WithLabelValues(result).Inc()
}

// RecordRescore records a snapshot republish and its row count.
func (m *Metrics) RecordRescore(rows int) {
	m.SnapshotRescores.Inc()
	m.SnapshotRows.Set(float64(rows))
}
