package metrics

import "github.com/prometheus/client_golang/prometheus"

// Analysis Prometheus metrics.
var (
	AnalysisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cohesion",
			Name:      "analysis_total",
			Help:      "Total number of analyses",
		},
		[]string{"status"}, // "ok" / "error"
	)

	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cohesion",
			Name:      "analysis_duration_seconds",
			Help:      "Analysis duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	AnalysisTexts = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cohesion",
			Name:      "analysis_texts",
			Help:      "Number of comparison texts per analysis",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
		},
	)

	PartitionBins = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cohesion",
			Name:      "partition_bins",
			Help:      "Bin count chosen by the best partition search",
			Buckets:   prometheus.LinearBuckets(1, 1, 12),
		},
	)

	ReportCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cohesion",
			Name:      "report_cache_total",
			Help:      "Report cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var analysisMetricsRegistered bool

// RegisterAnalysisMetrics registers Prometheus analysis metrics. Must be called once from main.
func RegisterAnalysisMetrics() {
	if analysisMetricsRegistered {
		return
	}
	prometheus.MustRegister(AnalysisTotal)
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(AnalysisTexts)
	prometheus.MustRegister(PartitionBins)
	prometheus.MustRegister(ReportCacheTotal)
	analysisMetricsRegistered = true
}
