package formtest

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/formflow-dev/formflow/pkg/engine"
	"github.com/formflow-dev/formflow/pkg/schema"
)

// FormBuilder allows fluent construction of test engines.
type FormBuilder struct {
	cfg engine.Config
}

// NewForm creates a new engine builder for testing.
//
// Example:
//
//	eng := formtest.NewForm(sections...).
//	    WithValues(schema.Values{"name": "Ada"}).
//	    WithOptions(engine.Options{ValidateOnBlur: true}).
//	    Build(t)
func NewForm(sections ...schema.Section) *FormBuilder {
	return &FormBuilder{cfg: engine.Config{Sections: sections}}
}

// WithSchema uses a pre-built schema instead of the section list.
func (b *FormBuilder) WithSchema(s *schema.Schema) *FormBuilder {
	b.cfg.Schema = s
	return b
}

// WithValues seeds the form, as when editing an existing record.
//
// Example:
//
//	eng := formtest.NewForm(sections...).WithValues(schema.Values{"plan": "pro"}).Build(t)
func (b *FormBuilder) WithValues(values schema.Values) *FormBuilder {
	b.cfg.InitialValues = values
	return b
}

// WithOptions sets the engine options.
func (b *FormBuilder) WithOptions(opts engine.Options) *FormBuilder {
	b.cfg.Options = opts
	return b
}

// WithCallbacks sets the full callback set, replacing any callback
// installed earlier.
//
// Example:
//
//	rec := &formtest.Recorder{}
//	eng := formtest.NewForm(sections...).WithCallbacks(rec.Callbacks()).Build(t)
func (b *FormBuilder) WithCallbacks(cbs engine.Callbacks) *FormBuilder {
	b.cfg.Callbacks = cbs
	return b
}

// OnSubmit installs just the submit callback.
func (b *FormBuilder) OnSubmit(fn func(ctx context.Context, values schema.Values) error) *FormBuilder {
	b.cfg.Callbacks.OnSubmit = fn
	return b
}

// Build returns the final engine for use in tests, failing the test
// when the configuration is invalid.
func (b *FormBuilder) Build(t *testing.T) *engine.Engine {
	t.Helper()
	eng, err := engine.New(b.cfg)
	if err != nil {
		t.Fatalf("building engine: %v", err)
	}
	return eng
}

// Form is a shorthand for NewForm(sections...).Build(t).
//
// Example:
//
//	eng := formtest.Form(t, sections...)
func Form(t *testing.T, sections ...schema.Section) *engine.Engine {
	t.Helper()
	return NewForm(sections...).Build(t)
}

// Fill sets the given values in field-name order. Unknown names fail
// the test immediately; the engine would silently drop the write and
// the test would fail somewhere less helpful.
//
// Example:
//
//	formtest.Fill(t, eng, map[string]any{"name": "Ada", "email": "ada@x.com"})
func Fill(t *testing.T, eng *engine.Engine, values map[string]any) {
	t.Helper()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := eng.Schema().Field(name); !ok {
			t.Fatalf("Fill: unknown field %q", name)
		}
		eng.SetValue(name, values[name])
	}
}

// MustNext advances to the next section and fails the test when the
// engine refused the move (validation gate, last section, or a
// submission in flight).
func MustNext(t *testing.T, eng *engine.Engine) {
	t.Helper()
	before := eng.ActiveSectionID()
	eng.Next()
	if got := eng.ActiveSectionID(); got == before {
		t.Fatalf("Next: still on section %q, errors: %v", before, eng.Errors())
	}
}

// MustGoTo jumps to the given section and fails the test when the
// engine refused the move.
func MustGoTo(t *testing.T, eng *engine.Engine, sectionID string) {
	t.Helper()
	eng.GoTo(sectionID)
	if got := eng.ActiveSectionID(); got != sectionID {
		t.Fatalf("GoTo(%q): still on section %q, errors: %v", sectionID, got, eng.Errors())
	}
}

// MustSubmit submits the form and fails the test on any error.
func MustSubmit(t *testing.T, eng *engine.Engine) {
	t.Helper()
	if err := eng.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v, errors: %v", err, eng.Errors())
	}
}

// SubmitExpectingErrors submits the form, requires validation to reject
// it, and returns the engine's stored error map.
//
// Example:
//
//	errs := formtest.SubmitExpectingErrors(t, eng)
//	if errs["email"] == "" {
//	    t.Error("expected an email error")
//	}
func SubmitExpectingErrors(t *testing.T, eng *engine.Engine) map[string]string {
	t.Helper()
	err := eng.Submit(context.Background())
	if err == nil {
		t.Fatal("Submit: succeeded, want a validation error")
	}
	var verr *engine.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Submit: got %v, want a validation error", err)
	}
	return eng.Errors()
}

// ExpectValue asserts a field's current value.
//
// Example:
//
//	formtest.ExpectValue(t, eng, "name", "Ada")
func ExpectValue(t *testing.T, eng *engine.Engine, name string, want any) {
	t.Helper()
	got := eng.Value(name)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("value %q = %#v, want %#v", name, got, want)
	}
}

// ExpectError asserts the message stored under an error key (a field
// name, a section key, or "general").
//
// Example:
//
//	formtest.ExpectError(t, eng, "email", "Email is required")
func ExpectError(t *testing.T, eng *engine.Engine, key, want string) {
	t.Helper()
	if got := eng.Errors()[key]; got != want {
		t.Errorf("error %q = %q, want %q", key, got, want)
	}
}

// ExpectNoError asserts that nothing is stored under the error key.
func ExpectNoError(t *testing.T, eng *engine.Engine, key string) {
	t.Helper()
	if got, ok := eng.Errors()[key]; ok {
		t.Errorf("error %q = %q, want none", key, got)
	}
}

// ExpectSection asserts the active section.
func ExpectSection(t *testing.T, eng *engine.Engine, wantID string) {
	t.Helper()
	if got := eng.ActiveSectionID(); got != wantID {
		t.Errorf("active section = %q, want %q", got, wantID)
	}
}

// ExpectCompletion asserts a section's completion ratio.
//
// Example:
//
//	formtest.ExpectCompletion(t, eng, "basic", 0.5)
func ExpectCompletion(t *testing.T, eng *engine.Engine, sectionID string, want float64) {
	t.Helper()
	if got := eng.Completion(sectionID); got != want {
		t.Errorf("completion(%q) = %v, want %v", sectionID, got, want)
	}
}

// ExpectSubmitState asserts where the submission lifecycle is.
func ExpectSubmitState(t *testing.T, eng *engine.Engine, want engine.SubmitState) {
	t.Helper()
	if got := eng.SubmitState(); got != want {
		t.Errorf("submit state = %v, want %v", got, want)
	}
}

// ExpectTouched asserts that the field has been touched.
func ExpectTouched(t *testing.T, eng *engine.Engine, name string) {
	t.Helper()
	if !eng.IsTouched(name) {
		t.Errorf("field %q is untouched, want touched", name)
	}
}
