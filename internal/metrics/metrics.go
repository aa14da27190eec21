// Package metrics exposes Prometheus instrumentation for jobs, renames and upstream APIs.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Jobs
	JobsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "renamarr_jobs_submitted_total",
			Help: "Total number of batch jobs submitted",
		},
	)

	JobsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "renamarr_jobs_finished_total",
			Help: "Total number of batch jobs that reached a terminal status",
		},
		[]string{"status"}, // completed, failed, cancelled
	)

	JobDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "renamarr_job_duration_seconds",
			Help:    "Wall time of batch jobs from start to terminal status",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900, 3600},
		},
	)

	QueueSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "renamarr_queue_jobs",
			Help: "Jobs currently held by the queue",
		},
		[]string{"state"}, // active, terminal
	)

	// Files
	FilesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "renamarr_files_processed_total",
			Help: "Files processed by the rename pipeline",
		},
		[]string{"outcome", "dry_run"}, // renamed, conflict, error
	)

	// Upstream metadata APIs
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "renamarr_upstream_request_duration_seconds",
			Help:    "Duration of metadata API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint", "outcome"},
	)

	UpstreamCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "renamarr_upstream_cache_hits_total",
			Help: "Metadata API responses served from cache",
		},
		[]string{"service", "layer"}, // layer: memory, sqlite
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "renamarr_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "renamarr_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "renamarr_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "status"},
	)

	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "renamarr_websocket_connections",
			Help: "Open job progress websocket connections",
		},
	)

	// Maintenance
	RowsPruned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "renamarr_maintenance_rows_pruned_total",
			Help: "Rows removed by periodic maintenance",
		},
		[]string{"table"},
	)
)

// RecordJobFinished records a job reaching a terminal status.
func RecordJobFinished(status string, duration time.Duration) {
	JobsFinished.WithLabelValues(status).Inc()
	JobDuration.Observe(duration.Seconds())
}

// RecordFile records the outcome of one file in the rename pipeline.
func RecordFile(outcome string, dryRun bool) {
	FilesProcessed.WithLabelValues(outcome, strconv.FormatBool(dryRun)).Inc()
}

// RecordUpstream records one metadata API request.
func RecordUpstream(service, endpoint string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequestDuration.WithLabelValues(service, endpoint, outcome).Observe(duration.Seconds())
}

// UpdateQueueSize publishes the queue's active and terminal job counts.
func UpdateQueueSize(active, terminal int) {
	QueueSize.WithLabelValues("active").Set(float64(active))
	QueueSize.WithLabelValues("terminal").Set(float64(terminal))
}

// RecordAPIRequest records one served API request.
func RecordAPIRequest(method string, status int) {
	APIRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
