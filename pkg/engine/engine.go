package engine

import (
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/formflow-dev/formflow/pkg/reactive"
	"github.com/formflow-dev/formflow/pkg/schema"
	"github.com/formflow-dev/formflow/pkg/telemetry"
	"github.com/formflow-dev/formflow/pkg/validate"
)

// Engine drives one multi-section form: reactive value/error/touched
// state, section navigation with forward gating, per-section progress,
// and the submission lifecycle.
//
// All mutators are safe for concurrent use and serialize through one
// internal lock. Read accessors go straight to the underlying signals,
// so renderers subscribed via Watch can read state while a mutation is
// being applied.
type Engine struct {
	schema *schema.Schema

	opts Options
	cbs  Callbacks

	logger  *slog.Logger
	metrics *telemetry.Metrics
	tracer  trace.Tracer

	// seed is the construction-time snapshot (initial values merged with
	// field defaults) that Reset and ResetOnSubmit restore.
	seed schema.Values

	values  *reactive.MapSignal[string, any]
	errors  *reactive.MapSignal[string, string]
	touched *reactive.MapSignal[string, bool]
	active  *reactive.Signal[string]

	submitState *reactive.Signal[SubmitState]
	submitting  *reactive.Signal[bool]
	submitted   *reactive.Signal[bool]
	succeeded   *reactive.Signal[bool]

	// completion and validity hold one memo per section, built at New.
	completion map[string]*reactive.Memo[float64]
	validity   map[string]*reactive.Memo[bool]

	// mu serializes writers. Readers never take it.
	mu sync.Mutex
}

// New builds an Engine from the config. It fails when the schema (or
// the section list it is compiled from) is invalid.
func New(cfg Config) (*Engine, error) {
	s := cfg.Schema
	if s == nil {
		built, err := schema.New(cfg.Sections)
		if err != nil {
			return nil, err
		}
		s = built
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	seed := s.DefaultValues(cfg.InitialValues)

	e := &Engine{
		schema:      s,
		opts:        cfg.Options,
		cbs:         cfg.Callbacks,
		logger:      logger,
		metrics:     cfg.Metrics,
		tracer:      cfg.Tracer,
		seed:        seed,
		values:      reactive.NewMapSignal[string, any](seed.Clone()),
		errors:      reactive.NewMapSignal[string, string](nil),
		touched:     reactive.NewMapSignal[string, bool](nil),
		active:      reactive.NewSignal(s.First().ID),
		submitState: reactive.NewSignal(SubmitIdle),
		submitting:  reactive.NewSignal(false),
		submitted:   reactive.NewSignal(false),
		succeeded:   reactive.NewSignal(false),
	}
	e.buildProgress()

	return e, nil
}

// Schema returns the form model the engine was built from.
func (e *Engine) Schema() *schema.Schema {
	return e.schema
}

// FieldState is the per-field render data a widget needs.
type FieldState struct {
	Value    any
	Error    string
	Touched  bool
	Disabled bool
}

// FieldState returns the render data for one field. ok is false for
// names the schema doesn't declare. A field renders disabled when the
// field or its owning section is disabled.
func (e *Engine) FieldState(name string) (FieldState, bool) {
	f, ok := e.schema.Field(name)
	if !ok {
		return FieldState{}, false
	}
	sec, _ := e.schema.Section(e.schema.SectionOf(name))

	value, _ := e.values.GetKey(name)
	errMsg, _ := e.errors.GetKey(name)
	touched, _ := e.touched.GetKey(name)

	return FieldState{
		Value:    value,
		Error:    errMsg,
		Touched:  touched,
		Disabled: f.Disabled || sec.Disabled,
	}, true
}

// SectionState is the per-section render data a tab header needs.
type SectionState struct {
	Completion float64
	Valid      bool
	Active     bool
	Disabled   bool

	// Error carries the section-level validator message, if any.
	Error string
}

// SectionState returns the render data for one section. ok is false
// for IDs the schema doesn't declare.
func (e *Engine) SectionState(id string) (SectionState, bool) {
	sec, ok := e.schema.Section(id)
	if !ok {
		return SectionState{}, false
	}

	banner, _ := e.errors.GetKey(validate.SectionKey(id))

	return SectionState{
		Completion: e.Completion(id),
		Valid:      e.Valid(id),
		Active:     e.active.Get() == id,
		Disabled:   sec.Disabled,
		Error:      banner,
	}, true
}

// Values returns a snapshot of the current form values. The returned
// map is never mutated by the engine; callers may hold it across writes.
func (e *Engine) Values() schema.Values {
	return schema.Values(e.values.Get())
}

// Value returns the current value of a single field.
func (e *Engine) Value(name string) any {
	v, _ := e.values.GetKey(name)
	return v
}

// Errors returns the current validation errors keyed by field name,
// section key, or "general".
func (e *Engine) Errors() map[string]string {
	return e.errors.Get()
}

// GeneralError returns the submission-level error message, or "".
func (e *Engine) GeneralError() string {
	msg, _ := e.errors.GetKey(generalErrorKey)
	return msg
}

// IsValid returns true when no validation errors are stored.
func (e *Engine) IsValid() bool {
	return e.errors.Len() == 0
}

// IsTouched returns true if the field has been interacted with.
func (e *Engine) IsTouched(name string) bool {
	touched, _ := e.touched.GetKey(name)
	return touched
}

// ActiveSectionID returns the ID of the active section.
func (e *Engine) ActiveSectionID() string {
	return e.active.Get()
}

// Submitting returns true while a submission attempt is in flight.
func (e *Engine) Submitting() bool {
	return e.submitting.Get()
}

// Submitted returns true once a submission attempt has succeeded.
func (e *Engine) Submitted() bool {
	return e.submitted.Get()
}

// Succeeded returns true when the most recent submission attempt
// succeeded.
func (e *Engine) Succeeded() bool {
	return e.succeeded.Get()
}

// SubmitState returns where the submission lifecycle currently is.
func (e *Engine) SubmitState() SubmitState {
	return e.submitState.Get()
}

// Watch runs fn immediately and re-runs it whenever any engine state
// read inside fn changes. The returned cleanup stops the subscription.
//
// fn runs while the engine is applying updates and must not call
// engine mutators.
func (e *Engine) Watch(fn func()) reactive.Cleanup {
	return reactive.Watch(fn)
}

// snapshotValues returns the current values map without tracking.
// Copy-on-write map updates keep the snapshot stable.
func (e *Engine) snapshotValues() schema.Values {
	return schema.Values(e.values.Peek())
}
