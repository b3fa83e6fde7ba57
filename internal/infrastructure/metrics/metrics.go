// Package metrics provides Prometheus instrumentation for the fraud scoring API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fraudlens"

// Prediction sources
const (
	SourceModel = "model"
	SourceAI    = "ai"
)

var (
	// HTTPRequestDuration observes request latency by method, route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsTotal counts HTTP requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// PredictionsTotal counts successful verdicts by source and label.
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Total successful predictions by source and label.",
		},
		[]string{"source", "label"},
	)

	// PredictionErrorsTotal counts failed predictions by source and error kind.
	PredictionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_errors_total",
			Help:      "Total failed predictions by source and error kind.",
		},
		[]string{"source", "kind"},
	)

	// FraudProbability observes the classifier's class-1 probability.
	FraudProbability = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fraud_probability",
			Help:      "Distribution of classifier fraud probabilities.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	// AIRequestDuration observes the full streamed AI call, first byte to last chunk.
	AIRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_request_duration_seconds",
			Help:      "Duration of text-generation calls in seconds.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)

	// KeepAlivePingsTotal counts self-pings by result.
	KeepAlivePingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "keepalive_pings_total",
			Help:      "Total keep-alive pings by result.",
		},
		[]string{"result"},
	)

	// ModelLoaded is 1 when a classifier is available.
	ModelLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_loaded",
			Help:      "Whether a classifier artifact is loaded (1) or not (0).",
		},
	)
)

// RecordPrediction records one successful verdict
func RecordPrediction(source, label string) {
	PredictionsTotal.WithLabelValues(source, label).Inc()
}

// RecordPredictionError records one failed prediction
func RecordPredictionError(source, kind string) {
	PredictionErrorsTotal.WithLabelValues(source, kind).Inc()
}

// SetModelLoaded updates the model_loaded gauge
func SetModelLoaded(loaded bool) {
	if loaded {
		ModelLoaded.Set(1)
		return
	}
	ModelLoaded.Set(0)
}
