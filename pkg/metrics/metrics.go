package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Create a custom registry
var registry = prometheus.NewRegistry()

// Create a registerer that uses our registry
var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Common labels for all submission metrics
	commonLabels = []string{"form"}

	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		25, 50, 100, // Local API (25-100ms)
		250, 500, 1000, // Hosted API (250ms-1s)
		2500, 5000, 10000, // Cold starts (2.5s-10s)
		30000, 60000, // Hung upstreams
	}

	// SubmissionsTotal counts finished submissions by outcome ("success" or "error")
	SubmissionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "nhd_form_submissions_total",
			Help: "Total number of form submissions by final outcome",
		},
		append(commonLabels, "outcome"),
	)

	// AttemptsTotal counts individual strategy attempts, including swallowed failures
	AttemptsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "nhd_form_submission_attempts_total",
			Help: "Submission attempts per strategy and status",
		},
		append(commonLabels, "strategy", "status"),
	)

	// SubmissionLatency observes the duration of whole submissions
	SubmissionLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nhd_form_submission_latency_ms",
			Help:    "Submission latency in milliseconds",
			Buckets: latencyBuckets,
		},
		commonLabels,
	)

	// RequestsTotal counts requests handled by the development server
	RequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "nhd_dev_requests_total",
			Help: "Total number of requests served by the development server",
		},
		[]string{"method", "status"},
	)

	// RequestLatency observes development server request latency
	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nhd_dev_request_latency_ms",
			Help:    "Development server request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method"},
	)

	// FormCapturesTotal counts form-encoded submissions received by the development server
	FormCapturesTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "nhd_dev_form_captures_total",
			Help: "Form-encoded fallback submissions received by the development server",
		},
		commonLabels,
	)
)

// MetricsConfig holds configuration for which metrics to enable
type MetricsConfig struct {
	EnableLatency        bool // Submission latency histogram
	EnableDetailedStatus bool // Detailed status codes (vs. status classes)
}

// DefaultMetricsConfig returns default metrics configuration with safe defaults
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency:        true,
		EnableDetailedStatus: false, // Status classes keep label cardinality low
	}
}

// Config holds the current metrics configuration
var Config = DefaultMetricsConfig()

var initOnce sync.Once

// Initialize registers runtime collectors and applies cfg. Safe to call more than once.
func Initialize(cfg MetricsConfig) {
	Config = cfg
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	})
}

// Handler exposes the registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// GetStatusClass returns either the specific status code or its class (e.g., "2xx").
// Non-numeric values such as "transport_error" pass through unchanged.
func GetStatusClass(status string) string {
	code, err := strconv.Atoi(status)
	if err != nil {
		return status
	}
	if !Config.EnableDetailedStatus {
		return fmt.Sprintf("%dxx", code/100)
	}
	return status
}
