package engine

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/formflow-dev/formflow/pkg/schema"
	"github.com/formflow-dev/formflow/pkg/telemetry"
)

// Options control validation timing and navigation policy.
// The zero value validates only at submit and allows no section skipping.
type Options struct {
	// ValidateOnChange runs the field's checks on every SetValue.
	ValidateOnChange bool

	// ValidateOnBlur runs the field's checks when the field loses focus.
	ValidateOnBlur bool

	// ValidateOnSubmit is accepted for parity with the change/blur flags.
	// Submit always validates the whole form regardless of this flag;
	// together with the other two it decides whether forward navigation
	// is gated.
	ValidateOnSubmit bool

	// AllowSectionSkipping permits forward jumps past the next section.
	// The active section is still validated before any forward move.
	AllowSectionSkipping bool

	// ResetOnSubmit restores the initial values (and clears errors and
	// touched marks) after a successful submission. The submission flags
	// stay observable until Reset is called explicitly.
	ResetOnSubmit bool
}

// validatesEver reports whether forward navigation is gated at all.
func (o Options) validatesEver() bool {
	return o.ValidateOnChange || o.ValidateOnBlur || o.ValidateOnSubmit
}

// Callbacks are the caller's hooks into the form lifecycle. Every
// callback is optional and is invoked outside the engine's internal
// lock, so callback bodies may read engine observables freely.
type Callbacks struct {
	// OnSubmit performs the actual submission (API call, DB write).
	// A nil OnSubmit makes every valid submission succeed immediately.
	OnSubmit func(ctx context.Context, values schema.Values) error

	// OnCancel is invoked by Cancel. The engine never mutates state on
	// cancellation; dialog dismissal is the caller's concern.
	OnCancel func()

	// OnSectionChange fires after the active section actually changed.
	OnSectionChange func(sectionID, previousID string)

	// OnFieldChange fires after a field value was merged.
	OnFieldChange func(name string, value any, sectionID string)

	// OnValidationError fires when a submit attempt is rejected by
	// validation, with the full error map.
	OnValidationError func(errs map[string]string)
}

// Config assembles everything an Engine needs. Schema wins over
// Sections when both are set; Sections is a convenience for callers
// that don't need to share the built schema.
type Config struct {
	// Schema is the validated form model.
	Schema *schema.Schema

	// Sections is compiled into a Schema when Schema is nil.
	Sections []schema.Section

	// InitialValues seed the form, typically the record being edited.
	// Keys that don't name declared fields are kept as-is; only declared
	// fields are validated and rendered. Field defaults backfill the
	// keys initial values don't supply.
	InitialValues schema.Values

	Options   Options
	Callbacks Callbacks

	// Logger receives structured engine logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Metrics receives engine counters. Nil disables metrics recording.
	Metrics *telemetry.Metrics

	// Tracer records submit spans. Nil disables tracing.
	Tracer trace.Tracer
}
