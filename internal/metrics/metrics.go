// Package metrics defines Prometheus collectors for the service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// EmbeddingRequestsTotal counts embedding provider requests.
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chainreach",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	// EmbeddingRequestDuration observes embedding provider latency.
	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chainreach",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	// EmbeddingTokensTotal counts embedding tokens consumed.
	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chainreach",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	// EmbeddingCacheTotal counts embedding cache hits and misses.
	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chainreach",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	// RetrievalResultsCount observes the number of results per rank call.
	RetrievalResultsCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "chainreach",
			Name:      "retrieval_results_count",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
	)

	// ComplianceChecksTotal counts per-message compliance verdicts.
	ComplianceChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chainreach",
			Name:      "compliance_checks_total",
			Help:      "Total compliance checks by verdict",
		},
		[]string{"mode", "result"}, // result: approved / rejected / error
	)

	// SegmentPredictionsTotal counts segmentation predictions.
	SegmentPredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chainreach",
			Name:      "segment_predictions_total",
			Help:      "Total segmentation predictions",
		},
		[]string{"source"}, // manual / customer
	)
)

var serviceMetricsRegistered bool

// RegisterServiceMetrics registers all service collectors. Must be called
// once from main.
func RegisterServiceMetrics() {
	if serviceMetricsRegistered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(RetrievalResultsCount)
	prometheus.MustRegister(ComplianceChecksTotal)
	prometheus.MustRegister(SegmentPredictionsTotal)
	serviceMetricsRegistered = true
}
