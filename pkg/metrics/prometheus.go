// Package metrics provides Prometheus metrics for the wrapped analytics
// engine: run progress, compute pool throughput, and warning counts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the engine's Prometheus collectors.
type Manager struct {
	namespace string
	registry  prometheus.Registerer

	runsTotal        prometheus.Counter
	seasonsProcessed prometheus.Counter
	playersScored    prometheus.Counter
	warnings         *prometheus.CounterVec
	stageDuration    *prometheus.HistogramVec

	tasksEnqueued  prometheus.Counter
	tasksProcessed prometheus.Counter
	taskErrors     prometheus.Counter
	taskDuration   prometheus.Histogram
	taskQueueSize  prometheus.Gauge
	workerCount    prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // dedicated registry keeps /metrics free of default collectors

func init() { //nolint:gochecknoinits // metrics must exist before any engine code records
	globalManager = NewManager(WithRegistry(customRegistry))
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry sets a custom Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a Manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "wrapped",
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.registry)

	m.runsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "runs_total",
		Help:      "Analytics runs started.",
	})
	m.seasonsProcessed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "seasons_processed_total",
		Help:      "Seasons whose replacement levels and VOR were computed.",
	})
	m.playersScored = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "players_scored_total",
		Help:      "Player-season VOR records produced.",
	})
	m.warnings = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "warnings_total",
		Help:      "Non-fatal warnings by code.",
	}, []string{"code"})
	m.stageDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "stage_duration_seconds",
		Help:      "Wall time per pipeline stage.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})

	m.tasksEnqueued = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "compute",
		Name:      "tasks_enqueued_total",
		Help:      "Tasks placed on the compute queue.",
	})
	m.tasksProcessed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "compute",
		Name:      "tasks_processed_total",
		Help:      "Tasks completed without error.",
	})
	m.taskErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "compute",
		Name:      "task_errors_total",
		Help:      "Tasks that returned an error.",
	})
	m.taskDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "compute",
		Name:      "task_duration_seconds",
		Help:      "Task execution time.",
		Buckets:   prometheus.DefBuckets,
	})
	m.taskQueueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "compute",
		Name:      "task_queue_size",
		Help:      "Tasks currently queued.",
	})
	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "compute",
		Name:      "worker_count",
		Help:      "Active compute workers.",
	})

	return m
}

// Package-level recorders against the global manager.

// RecordRunStarted counts a new analytics run.
func RecordRunStarted() { globalManager.runsTotal.Inc() }

// RecordSeasonProcessed counts a completed per-season computation.
func RecordSeasonProcessed() { globalManager.seasonsProcessed.Inc() }

// RecordPlayersScored counts VOR records produced in a season.
func RecordPlayersScored(n int) { globalManager.playersScored.Add(float64(n)) }

// RecordWarning counts a non-fatal warning by code.
func RecordWarning(code string) { globalManager.warnings.WithLabelValues(code).Inc() }

// ObserveStageDuration records wall time for one pipeline stage.
func ObserveStageDuration(stage string, seconds float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordTaskEnqueued counts a task placed on the compute queue.
func RecordTaskEnqueued() { globalManager.tasksEnqueued.Inc() }

// RecordTaskProcessed counts a successfully completed task.
func RecordTaskProcessed() { globalManager.tasksProcessed.Inc() }

// RecordTaskError counts a failed task.
func RecordTaskError() { globalManager.taskErrors.Inc() }

// ObserveTaskDuration records one task's execution time.
func ObserveTaskDuration(seconds float64) { globalManager.taskDuration.Observe(seconds) }

// UpdateTaskQueueSize sets the current queue depth.
func UpdateTaskQueueSize(n int) { globalManager.taskQueueSize.Set(float64(n)) }

// UpdateWorkerCount sets the active worker gauge.
func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }

// GetRegistry returns the registry backing the global manager, for the
// optional /metrics endpoint.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
