package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func newTestMetrics() *Metrics {
	return NewMetrics(WithRegistry(prometheus.NewRegistry()))
}

func TestMetrics_RecordSubmitByResult(t *testing.T) {
	m := newTestMetrics()

	m.RecordSubmit(ResultSuccess, 0.1)
	m.RecordSubmit(ResultSuccess, 0.2)
	m.RecordSubmit(ResultError, 0.3)
	m.RecordSubmit(ResultValidation, 0)
	m.RecordSubmit(ResultDropped, 0)

	if got := metricCounterValue(t, m.submitsTotal.WithLabelValues(ResultSuccess)); got != 2 {
		t.Fatalf("submits_total(success)=%v, want 2", got)
	}
	if got := metricCounterValue(t, m.submitsTotal.WithLabelValues(ResultError)); got != 1 {
		t.Fatalf("submits_total(error)=%v, want 1", got)
	}
	if got := metricCounterValue(t, m.submitsTotal.WithLabelValues(ResultValidation)); got != 1 {
		t.Fatalf("submits_total(validation)=%v, want 1", got)
	}
	if got := metricCounterValue(t, m.submitsTotal.WithLabelValues(ResultDropped)); got != 1 {
		t.Fatalf("submits_total(dropped)=%v, want 1", got)
	}
	if got := metricHistogramCount(t, m.submitDuration); got != 3 {
		t.Fatalf("submit_duration_seconds sample count=%v, want 3 (validation and dropped results are not timed)", got)
	}
}

func TestMetrics_RecordValidationErrors(t *testing.T) {
	m := newTestMetrics()

	m.RecordValidationErrors(3)
	m.RecordValidationErrors(0)
	m.RecordValidationErrors(-1)

	if got := metricCounterValue(t, m.validationErrors); got != 3 {
		t.Fatalf("validation_errors_total=%v, want 3", got)
	}
}

func TestMetrics_RecordNavigationBlocked(t *testing.T) {
	m := newTestMetrics()

	m.RecordNavigationBlocked("basic")
	m.RecordNavigationBlocked("basic")

	if got := metricCounterValue(t, m.navigationBlocked.WithLabelValues("basic")); got != 2 {
		t.Fatalf("navigation_blocked_total(basic)=%v, want 2", got)
	}
}

func TestMetrics_RecordFieldAndSectionChanges(t *testing.T) {
	m := newTestMetrics()

	m.RecordFieldChange()
	m.RecordFieldChange()
	m.RecordSectionChange()

	if got := metricCounterValue(t, m.fieldChangesTotal); got != 2 {
		t.Fatalf("field_changes_total=%v, want 2", got)
	}
	if got := metricCounterValue(t, m.sectionChangesTotal); got != 1 {
		t.Fatalf("section_changes_total=%v, want 1", got)
	}
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics

	m.RecordSubmit(ResultSuccess, 0.1)
	m.RecordValidationErrors(1)
	m.RecordNavigationBlocked("s")
	m.RecordFieldChange()
	m.RecordSectionChange()
}
