package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the service on a private registry
type Metrics struct {
	registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	predictions       *prometheus.CounterVec
	predictionErrors  *prometheus.CounterVec
	predictionLatency prometheus.Histogram
	reloads           *prometheus.CounterVec
	modelInfo         *prometheus.GaugeVec
}

// New creates and registers all collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentiment_predictions_total",
			Help: "Predictions served by sentiment label",
		}, []string{"sentiment"}),
		predictionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentiment_prediction_errors_total",
			Help: "Failed predictions by error kind",
		}, []string{"kind"}),
		predictionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentiment_prediction_duration_seconds",
			Help:    "Time spent transforming and classifying one text",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentiment_model_reloads_total",
			Help: "Model reload attempts by result",
		}, []string{"result"}),
		modelInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sentiment_model_info",
			Help: "Currently served model version (always 1)",
		}, []string{"model", "version"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.predictions,
		m.predictionErrors,
		m.predictionLatency,
		m.reloads,
		m.modelInfo,
	)
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTPRequest records one finished HTTP request
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// ObservePrediction records one served prediction
func (m *Metrics) ObservePrediction(sentiment string, d time.Duration) {
	m.predictions.WithLabelValues(sentiment).Inc()
	m.predictionLatency.Observe(d.Seconds())
}

// ObservePredictionError records one failed prediction
func (m *Metrics) ObservePredictionError(kind string) {
	m.predictionErrors.WithLabelValues(kind).Inc()
}

// ObserveReload records a reload attempt
func (m *Metrics) ObserveReload(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.reloads.WithLabelValues(result).Inc()
}

// SetModelInfo marks modelName/version as the served model
func (m *Metrics) SetModelInfo(modelName, version string) {
	m.modelInfo.Reset()
	m.modelInfo.WithLabelValues(modelName, version).Set(1)
}
