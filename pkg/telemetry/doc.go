// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for form engines.
//
// # Overview
//
// Both surfaces are optional: an engine constructed without Metrics or a
// Tracer simply records nothing. Metrics are process-wide; create one
// Metrics value and share it across every engine in the process, since
// Prometheus rejects duplicate metric registration.
//
// # Usage
//
//	m := telemetry.NewMetrics(
//	    telemetry.WithNamespace("adminpanel"),
//	)
//
//	eng, err := engine.New(engine.Config{
//	    Schema:  s,
//	    Metrics: m,
//	    Tracer:  telemetry.NewTracer(),
//	})
//
// Expose the metrics endpoint with promhttp.Handler() as usual. Tracing
// uses the global OpenTelemetry tracer provider; configure it in main()
// before constructing engines.
package telemetry
