package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submit result label values.
const (
	ResultSuccess    = "success"
	ResultError      = "error"
	ResultValidation = "validation"
	ResultDropped    = "dropped"
)

// MetricsConfig configures the engine metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "formflow").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for submit duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the engine metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the submit duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "formflow",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics for form engines. All recording
// methods are safe on a nil receiver, so engines without metrics pay
// nothing.
type Metrics struct {
	submitsTotal         *prometheus.CounterVec
	submitDuration       prometheus.Histogram
	validationErrors     prometheus.Counter
	navigationBlocked    *prometheus.CounterVec
	fieldChangesTotal    prometheus.Counter
	sectionChangesTotal  prometheus.Counter
}

// NewMetrics registers and returns the engine metrics.
//
// Metrics registered:
//   - formflow_submits_total: Counter of submit attempts by result
//   - formflow_submit_duration_seconds: Histogram of submit callback duration
//   - formflow_validation_errors_total: Counter of field errors surfaced at submit
//   - formflow_navigation_blocked_total: Counter of refused forward transitions by section
//   - formflow_field_changes_total: Counter of accepted field mutations
//   - formflow_section_changes_total: Counter of completed section transitions
//
// Create one Metrics per process and share it across engines; registering
// the same names twice on one registry panics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		submitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "submits_total",
			Help:        "Total number of submit attempts by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		submitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "submit_duration_seconds",
			Help:        "Submit callback duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		validationErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "validation_errors_total",
			Help:        "Total number of field errors surfaced at submit",
			ConstLabels: config.ConstLabels,
		}),

		navigationBlocked: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_blocked_total",
			Help:        "Total number of refused forward section transitions",
			ConstLabels: config.ConstLabels,
		}, []string{"section"}),

		fieldChangesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "field_changes_total",
			Help:        "Total number of accepted field mutations",
			ConstLabels: config.ConstLabels,
		}),

		sectionChangesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "section_changes_total",
			Help:        "Total number of completed section transitions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RecordSubmit records a submit attempt and, for results that ran the
// caller's callback, its duration.
func (m *Metrics) RecordSubmit(result string, seconds float64) {
	if m == nil {
		return
	}
	m.submitsTotal.WithLabelValues(result).Inc()
	if result == ResultSuccess || result == ResultError {
		m.submitDuration.Observe(seconds)
	}
}

// RecordValidationErrors records field errors surfaced by a submit attempt.
func (m *Metrics) RecordValidationErrors(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.validationErrors.Add(float64(count))
}

// RecordNavigationBlocked records a refused forward transition out of the
// given section.
func (m *Metrics) RecordNavigationBlocked(sectionID string) {
	if m == nil {
		return
	}
	m.navigationBlocked.WithLabelValues(sectionID).Inc()
}

// RecordFieldChange records one accepted field mutation.
func (m *Metrics) RecordFieldChange() {
	if m == nil {
		return
	}
	m.fieldChangesTotal.Inc()
}

// RecordSectionChange records one completed section transition.
func (m *Metrics) RecordSectionChange() {
	if m == nil {
		return
	}
	m.sectionChangesTotal.Inc()
}
