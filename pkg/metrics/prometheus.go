// Package metrics provides Prometheus metrics for the crux batch runs.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of a crux run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Index build
	documents           *prometheus.CounterVec
	documentsSkipped    *prometheus.CounterVec
	facts               prometheus.Counter
	participants        prometheus.Gauge
	disciplineDefaulted prometheus.Counter
	genderUnresolved    prometheus.Counter
	buildDuration       prometheus.Histogram

	// Fetch
	fetchRequests *prometheus.CounterVec

	// Query
	queryNames *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "crux",
		subsystem:        "index",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.documents = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "documents_total",
		Help:      "Competition documents normalized, by shape",
	}, []string{"shape"})

	m.documentsSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "documents_skipped_total",
		Help:      "Competition documents skipped, by reason",
	}, []string{"reason"})

	m.facts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "facts_total",
		Help:      "Participant-competition facts folded into the index",
	})

	m.participants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "participants",
		Help:      "Distinct persons in the participant index",
	})

	m.disciplineDefaulted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "discipline_defaulted_total",
		Help:      "Discipline labels that matched no rule and fell back to the default",
	})

	m.genderUnresolved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gender_unresolved_total",
		Help:      "Gender inferences that ended as unknown",
	})

	m.buildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "build_duration_seconds",
		Help:      "Wall time of a full index build",
		Buckets:   m.histogramBuckets,
	})

	m.fetchRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "fetch",
		Name:      "requests_total",
		Help:      "Upstream requests, by outcome",
	}, []string{"outcome"})

	m.queryNames = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "query",
		Name:      "names_total",
		Help:      "Query names, by resolution outcome",
	}, []string{"outcome"})
}

// Registry returns the registry the manager's collectors live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// RecordDocument counts a normalized document of the given shape.
func RecordDocument(shape string) {
	globalManager.documents.WithLabelValues(shape).Inc()
}

// RecordDocumentSkipped counts a skipped document.
func RecordDocumentSkipped(reason string) {
	globalManager.documentsSkipped.WithLabelValues(reason).Inc()
}

// RecordFact counts one folded fact.
func RecordFact() {
	globalManager.facts.Inc()
}

// UpdateParticipants sets the number of indexed persons.
func UpdateParticipants(count int) {
	globalManager.participants.Set(float64(count))
}

// RecordDisciplineDefaulted counts a defaulted discipline.
func RecordDisciplineDefaulted() {
	globalManager.disciplineDefaulted.Inc()
}

// RecordGenderUnresolved counts an unknown gender.
func RecordGenderUnresolved() {
	globalManager.genderUnresolved.Inc()
}

// RecordBuildDuration observes a build duration in seconds.
func RecordBuildDuration(seconds float64) {
	globalManager.buildDuration.Observe(seconds)
}

// RecordFetchRequest counts an upstream request outcome.
func RecordFetchRequest(outcome string) {
	globalManager.fetchRequests.WithLabelValues(outcome).Inc()
}

// RecordQueryName counts a resolved or unresolved query name.
func RecordQueryName(resolved bool) {
	outcome := "unresolved"
	if resolved {
		outcome = "resolved"
	}
	globalManager.queryNames.WithLabelValues(outcome).Inc()
}

// GetRegistry returns the custom registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the current registry in the node-exporter textfile format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %w", ErrObserveFailed, err)
	}
	return nil
}
