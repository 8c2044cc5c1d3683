// Package metrics provides the centralized Prometheus registry for the
// prediction pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ObservationsIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "strikeout_edge",
		Name:      "observations_ingested_total",
		Help:      "Total number of box score rows merged into the ledger",
	})
	DuplicateRowsSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "strikeout_edge",
		Name:      "duplicate_rows_skipped_total",
		Help:      "Total number of re-scraped rows dropped by ledger deduplication",
	})
	ExactResolutionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "strikeout_edge",
		Name:      "exact_resolutions_total",
		Help:      "Total number of exact name-key matches",
	})
	FuzzyResolutionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "strikeout_edge",
		Name:      "fuzzy_resolutions_total",
		Help:      "Total number of accepted fuzzy name matches",
	})
	UnresolvedNamesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "strikeout_edge",
		Name:      "unresolved_names_total",
		Help:      "Total number of names with no match above the acceptance threshold",
	})
	PredictionsEmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "strikeout_edge",
		Name:      "predictions_emitted_total",
		Help:      "Total number of prediction rows emitted",
	})
	SkippedInsufficientHistoryTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "strikeout_edge",
		Name:      "skipped_insufficient_history_total",
		Help:      "Total number of pitcher/date pairs skipped for short history",
	})
)

// Backfill outcome counters
var (
	BackfillResultsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "strikeout_edge",
		Name:      "backfill_results_total",
		Help:      "Backfill outcomes by result category",
	}, []string{"result"})
)

// Gauge metrics
var (
	LedgerRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "strikeout_edge",
		Name:      "ledger_rows",
		Help:      "Current row count of the master observation ledger",
	})
	LastPipelineRunTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "strikeout_edge",
		Name:      "last_pipeline_run_timestamp_seconds",
		Help:      "Unix time of the last completed scheduled pipeline run",
	})
	BackfillHitRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "strikeout_edge",
		Name:      "backfill_hit_rate",
		Help:      "Hit rate of the most recent backfill run, excluding NO DATA",
	})
)

// Histogram metrics
var (
	FuzzyMatchScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "strikeout_edge",
		Name:      "fuzzy_match_score",
		Help:      "Similarity scores of accepted fuzzy matches",
		Buckets:   []float64{80, 85, 90, 95, 99, 100},
	})
	PipelineRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "strikeout_edge",
		Name:      "pipeline_run_duration_seconds",
		Help:      "Duration of scheduled pipeline runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ObservationsIngestedTotal)
		registry.MustRegister(DuplicateRowsSkippedTotal)
		registry.MustRegister(ExactResolutionsTotal)
		registry.MustRegister(FuzzyResolutionsTotal)
		registry.MustRegister(UnresolvedNamesTotal)
		registry.MustRegister(PredictionsEmittedTotal)
		registry.MustRegister(SkippedInsufficientHistoryTotal)

		registry.MustRegister(BackfillResultsTotal)

		registry.MustRegister(LedgerRows)
		registry.MustRegister(LastPipelineRunTimestamp)
		registry.MustRegister(BackfillHitRate)

		registry.MustRegister(FuzzyMatchScore)
		registry.MustRegister(PipelineRunDuration)
	})
	return registry
}

// Handler returns an HTTP handler for the metrics endpoint
func Handler() http.Handler {
	return promhttp.HandlerFor(InitRegistry(), promhttp.HandlerOpts{})
}
