package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Steganography operation metrics
	embedsTotal     *prometheus.CounterVec
	extractsTotal   *prometheus.CounterVec
	operationTime   *prometheus.HistogramVec
	payloadBytes    *prometheus.HistogramVec
	blocksCorrected prometheus.Counter
	blocksFailed    prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meow_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meow_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "meow_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		embedsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meow_embeds_total",
				Help: "Total number of embed operations",
			},
			[]string{"status"},
		),

		extractsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meow_extracts_total",
				Help: "Total number of extract operations by terminal status",
			},
			[]string{"status"},
		),

		operationTime: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meow_operation_duration_seconds",
				Help:    "Steganography operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		payloadBytes: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meow_payload_bytes",
				Help:    "Payload sizes processed, in bytes",
				Buckets: prometheus.ExponentialBuckets(64, 4, 10),
			},
			[]string{"operation"},
		),

		blocksCorrected: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "meow_blocks_corrected_total",
				Help: "Total number of Reed-Solomon blocks that needed correction",
			},
		),

		blocksFailed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "meow_blocks_failed_total",
				Help: "Total number of uncorrectable Reed-Solomon blocks",
			},
		),
	}

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordEmbed records an embed operation
func (m *Metrics) RecordEmbed(success bool, payloadSize int, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.embedsTotal.WithLabelValues(status).Inc()
	m.operationTime.WithLabelValues("embed").Observe(duration.Seconds())
	m.payloadBytes.WithLabelValues("embed").Observe(float64(payloadSize))
}

// RecordExtract records an extract operation and its block outcomes
func (m *Metrics) RecordExtract(status string, corrected, failed int, duration time.Duration) {
	m.extractsTotal.WithLabelValues(status).Inc()
	m.operationTime.WithLabelValues("extract").Observe(duration.Seconds())
	m.blocksCorrected.Add(float64(corrected))
	m.blocksFailed.Add(float64(failed))
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
