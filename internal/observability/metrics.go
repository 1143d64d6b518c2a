// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	SnapshotsIngested prometheus.Counter
	RecordsIngested   prometheus.Counter
	RecordsDropped    *prometheus.CounterVec

	// Analysis metrics
	AnalysesComputed  prometheus.Counter
	AnalysisFailures  prometheus.Counter
	AlertsFired       *prometheus.CounterVec
	PipelineRunsTotal *prometheus.CounterVec
	PipelineDuration  prometheus.Histogram

	// Reporting metrics
	ReportsGenerated *prometheus.CounterVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	LastSuccessfulPipeline prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "tokenpulse"
	}

	return &Metrics{
		SnapshotsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "snapshots_ingested_total",
			Help:      "Total number of daily snapshots ingested",
		}),
		RecordsIngested: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "records_ingested_total",
			Help:      "Total number of asset records ingested",
		}),
		RecordsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "records_dropped_total",
			Help:      "Total number of asset records dropped during sanitization by reason",
		}, []string{"reason"}),

		AnalysesComputed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "analyses_computed_total",
			Help:      "Total number of per-asset analyses computed",
		}),
		AnalysisFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "analysis_failures_total",
			Help:      "Total number of per-asset analyses that failed and were excluded from ranking",
		}),
		AlertsFired: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "alerts_fired_total",
			Help:      "Total number of alerts fired by type",
		}, []string{"type"}),
		PipelineRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "pipeline_runs_total",
			Help:      "Total number of pipeline runs by status",
		}, []string{"status"}),
		PipelineDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "pipeline_duration_seconds",
			Help:      "Pipeline run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		ReportsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reporting",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated by format",
		}, []string{"format"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds by backend and operation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors by backend",
		}, []string{"backend"}),

		LastSuccessfulPipeline: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_pipeline_timestamp",
			Help:      "Unix timestamp of the last successful pipeline run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
