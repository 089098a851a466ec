package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "chartbot_"

// Provider names used as metric labels
const (
	ProviderJupiter     = "jupiter"
	ProviderDexScreener = "dexscreener"
	ProviderBirdeye     = "birdeye"
)

var (
	// ProviderRequestsTotal counts HTTP requests per price provider
	// Cardinality: ~9 (3 providers x 3 statuses)
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "provider_requests_total",
			Help: "Total number of HTTP requests per price provider",
		},
		[]string{"provider", "status"},
	)

	// ResolutionDuration tracks how long a full fallback-chain resolution takes
	ResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "price_resolution_duration_seconds",
			Help: "Time taken to resolve the current price through the provider chain",
		},
	)

	// ResolutionResultsTotal counts resolution outcomes by source
	// Cardinality: ~5 (cache, jupiter, dexscreener, birdeye, not_found)
	ResolutionResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "price_resolution_results_total",
			Help: "Resolution outcomes by winning source",
		},
		[]string{"source"},
	)

	// RenderDuration tracks chart rendering time per timeframe
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "chart_render_duration_seconds",
			Help: "Time taken to render a price chart",
		},
		[]string{"timeframe"},
	)
)

// MetricsWriter provides provider-scoped metric recording
type MetricsWriter struct {
	provider string
}

// NewMetricsWriter creates a writer for the given provider name
func NewMetricsWriter(provider string) *MetricsWriter {
	return &MetricsWriter{provider: provider}
}

// OnRequest records an HTTP request with its status
func (w *MetricsWriter) OnRequest(status string) {
	ProviderRequestsTotal.WithLabelValues(w.provider, status).Inc()
}

// RecordResolution records the outcome and duration of a resolution cycle
func RecordResolution(source string, start time.Time) {
	duration := time.Since(start)
	ResolutionDuration.Observe(duration.Seconds())
	ResolutionResultsTotal.WithLabelValues(source).Inc()
	log.Printf("Metrics: price resolution via %s took %.2fs", source, duration.Seconds())
}

// RecordRender records the duration of a chart render
func RecordRender(timeframe string, start time.Time) {
	RenderDuration.WithLabelValues(timeframe).Observe(time.Since(start).Seconds())
}
