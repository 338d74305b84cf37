package formtest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/formflow-dev/formflow/pkg/engine"
	"github.com/formflow-dev/formflow/pkg/formtest"
	"github.com/formflow-dev/formflow/pkg/schema"
)

// signupSections is the two-section fixture the tests drive: "account"
// with two required fields and "profile" with one optional field.
func signupSections() []schema.Section {
	return []schema.Section{
		{
			ID:    "account",
			Label: "Account",
			Fields: []schema.Field{
				{Name: "name", Label: "Name", Type: schema.TypeText, Required: true},
				{Name: "email", Label: "Email", Type: schema.TypeEmail, Required: true},
			},
		},
		{
			ID:    "profile",
			Label: "Profile",
			Fields: []schema.Field{
				{Name: "bio", Label: "Bio", Type: schema.TypeTextarea},
			},
		},
	}
}

func TestForm(t *testing.T) {
	eng := formtest.Form(t, signupSections()...)

	if eng == nil {
		t.Fatal("expected non-nil engine")
	}
	if got := eng.ActiveSectionID(); got != "account" {
		t.Errorf("expected to start on account, got %q", got)
	}
}

func TestNewForm_WithValues(t *testing.T) {
	eng := formtest.NewForm(signupSections()...).
		WithValues(schema.Values{"name": "Ada"}).
		Build(t)

	if got := eng.Value("name"); got != "Ada" {
		t.Errorf("expected name Ada, got %v", got)
	}
}

func TestNewForm_WithSchema(t *testing.T) {
	s := schema.MustNew(signupSections())
	eng := formtest.NewForm().WithSchema(s).Build(t)

	if eng.Schema() != s {
		t.Error("expected the provided schema to be used")
	}
}

func TestNewForm_WithOptions(t *testing.T) {
	eng := formtest.NewForm(signupSections()...).
		WithOptions(engine.Options{ValidateOnChange: true}).
		Build(t)

	eng.SetValue("name", "")

	if got := eng.Errors()["name"]; got != "Name is required" {
		t.Errorf("expected change validation to run, got error %q", got)
	}
}

func TestNewForm_OnSubmit(t *testing.T) {
	var received schema.Values
	eng := formtest.NewForm(signupSections()...).
		WithValues(schema.Values{"name": "Ada", "email": "ada@x.com"}).
		OnSubmit(func(ctx context.Context, values schema.Values) error {
			received = values
			return nil
		}).
		Build(t)

	formtest.MustSubmit(t, eng)

	if received == nil {
		t.Fatal("expected OnSubmit to run")
	}
	if received["name"] != "Ada" {
		t.Errorf("expected submitted name Ada, got %v", received["name"])
	}
}

func TestFill_SetsValuesAndTouches(t *testing.T) {
	eng := formtest.Form(t, signupSections()...)

	formtest.Fill(t, eng, map[string]any{"name": "Ada", "email": "ada@x.com"})

	formtest.ExpectValue(t, eng, "name", "Ada")
	formtest.ExpectValue(t, eng, "email", "ada@x.com")
	formtest.ExpectTouched(t, eng, "name")
	formtest.ExpectTouched(t, eng, "email")
}

func TestMustNext_Advances(t *testing.T) {
	eng := formtest.Form(t, signupSections()...)

	formtest.MustNext(t, eng)
	formtest.ExpectSection(t, eng, "profile")
}

func TestMustGoTo_Jumps(t *testing.T) {
	eng := formtest.Form(t, signupSections()...)

	formtest.MustGoTo(t, eng, "profile")
	formtest.MustGoTo(t, eng, "account")
	formtest.ExpectSection(t, eng, "account")
}

func TestMustSubmit_Succeeds(t *testing.T) {
	eng := formtest.NewForm(signupSections()...).
		WithValues(schema.Values{"name": "Ada", "email": "ada@x.com"}).
		Build(t)

	formtest.MustSubmit(t, eng)
	formtest.ExpectSubmitState(t, eng, engine.SubmitSucceeded)
}

func TestSubmitExpectingErrors_ReturnsErrorMap(t *testing.T) {
	eng := formtest.Form(t, signupSections()...)

	errs := formtest.SubmitExpectingErrors(t, eng)

	if errs["name"] != "Name is required" {
		t.Errorf("expected name error, got %q", errs["name"])
	}
	if errs["email"] != "Email is required" {
		t.Errorf("expected email error, got %q", errs["email"])
	}
	formtest.ExpectSubmitState(t, eng, engine.SubmitFailed)
}

func TestExpectValue_Pass(t *testing.T) {
	eng := formtest.NewForm(signupSections()...).
		WithValues(schema.Values{"name": "Ada"}).
		Build(t)

	// This should pass (no error)
	mockT := &testing.T{}
	formtest.ExpectValue(mockT, eng, "name", "Ada")

	if mockT.Failed() {
		t.Error("ExpectValue should have passed")
	}
}

func TestExpectValue_FailsOnMismatch(t *testing.T) {
	eng := formtest.NewForm(signupSections()...).
		WithValues(schema.Values{"name": "Ada"}).
		Build(t)

	mockT := &testing.T{}
	formtest.ExpectValue(mockT, eng, "name", "Grace")

	if !mockT.Failed() {
		t.Error("ExpectValue should have failed on a mismatch")
	}
}

func TestExpectError_Pass(t *testing.T) {
	eng := formtest.Form(t, signupSections()...)
	eng.SetError("email", "Email is taken")

	mockT := &testing.T{}
	formtest.ExpectError(mockT, eng, "email", "Email is taken")

	if mockT.Failed() {
		t.Error("ExpectError should have passed")
	}
}

func TestExpectNoError_Pass(t *testing.T) {
	eng := formtest.Form(t, signupSections()...)

	mockT := &testing.T{}
	formtest.ExpectNoError(mockT, eng, "email")

	if mockT.Failed() {
		t.Error("ExpectNoError should have passed")
	}
}

func TestExpectCompletion_Pass(t *testing.T) {
	eng := formtest.Form(t, signupSections()...)
	eng.SetValue("name", "Ada")

	mockT := &testing.T{}
	formtest.ExpectCompletion(mockT, eng, "account", 50)

	if mockT.Failed() {
		t.Error("ExpectCompletion should have passed")
	}
}

func TestRecorder_RecordsFieldAndSectionChanges(t *testing.T) {
	rec := &formtest.Recorder{}
	eng := formtest.NewForm(signupSections()...).
		WithCallbacks(rec.Callbacks()).
		Build(t)

	eng.SetValue("name", "Ada")
	eng.SetValue("email", "ada@x.com")
	eng.Next()

	if len(rec.FieldChanges) != 2 {
		t.Fatalf("expected 2 field changes, got %d", len(rec.FieldChanges))
	}
	last, ok := rec.LastFieldChange()
	if !ok {
		t.Fatal("expected a last field change")
	}
	if last.Name != "email" || last.Value != "ada@x.com" || last.SectionID != "account" {
		t.Errorf("unexpected last change: %+v", last)
	}

	if len(rec.SectionChanges) != 1 {
		t.Fatalf("expected 1 section change, got %d", len(rec.SectionChanges))
	}
	if rec.SectionChanges[0].SectionID != "profile" || rec.SectionChanges[0].PreviousID != "account" {
		t.Errorf("unexpected section change: %+v", rec.SectionChanges[0])
	}
}

func TestRecorder_RecordsSubmitsAndValidationErrors(t *testing.T) {
	rec := &formtest.Recorder{}
	eng := formtest.NewForm(signupSections()...).
		WithCallbacks(rec.Callbacks()).
		Build(t)

	// First attempt is rejected: required fields are blank.
	formtest.SubmitExpectingErrors(t, eng)

	if len(rec.ValidationErrors) != 1 {
		t.Fatalf("expected 1 recorded validation error, got %d", len(rec.ValidationErrors))
	}
	if rec.ValidationErrors[0]["name"] == "" {
		t.Error("expected the recorded error map to include name")
	}
	if len(rec.Submits) != 0 {
		t.Errorf("expected no submit before validation passes, got %d", len(rec.Submits))
	}

	formtest.Fill(t, eng, map[string]any{"name": "Ada", "email": "ada@x.com"})
	formtest.MustSubmit(t, eng)

	if len(rec.Submits) != 1 {
		t.Fatalf("expected 1 recorded submit, got %d", len(rec.Submits))
	}
	if rec.Submits[0]["name"] != "Ada" {
		t.Errorf("expected recorded submit values, got %v", rec.Submits[0])
	}
}

func TestRecorder_SubmitErrFailsTheAttempt(t *testing.T) {
	errBoom := errors.New("boom")
	rec := &formtest.Recorder{SubmitErr: errBoom}
	eng := formtest.NewForm(signupSections()...).
		WithValues(schema.Values{"name": "Ada", "email": "ada@x.com"}).
		WithCallbacks(rec.Callbacks()).
		Build(t)

	err := eng.Submit(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected the recorder's error, got %v", err)
	}
	if len(rec.Submits) != 1 {
		t.Errorf("expected the submit to be recorded, got %d", len(rec.Submits))
	}
	formtest.ExpectSubmitState(t, eng, engine.SubmitFailed)
}

func TestRecorder_RecordsCancels(t *testing.T) {
	rec := &formtest.Recorder{}
	eng := formtest.NewForm(signupSections()...).
		WithCallbacks(rec.Callbacks()).
		Build(t)

	eng.Cancel()
	eng.Cancel()

	if rec.Cancels != 2 {
		t.Errorf("expected 2 cancels, got %d", rec.Cancels)
	}
}
