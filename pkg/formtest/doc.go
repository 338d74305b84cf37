// Package formtest provides testing helpers for formflow engines.
//
// The formtest package reduces boilerplate when testing form flows by
// providing a fluent engine builder, drive helpers that fail the test
// on refused transitions, and assertions on engine state.
//
// # Quick Start
//
//	func TestSignup_HappyPath(t *testing.T) {
//	    eng := formtest.Form(t, signupSections()...)
//
//	    formtest.Fill(t, eng, map[string]any{"name": "Ada", "email": "ada@x.com"})
//	    formtest.MustNext(t, eng)
//	    formtest.MustSubmit(t, eng)
//	    formtest.ExpectSubmitState(t, eng, engine.SubmitSucceeded)
//	}
//
// # Fluent Engine Builder
//
// The builder allows chaining multiple setup operations:
//
//	eng := formtest.NewForm(sections...).
//	    WithValues(schema.Values{"plan": "pro"}).
//	    WithOptions(engine.Options{ValidateOnBlur: true}).
//	    OnSubmit(func(ctx context.Context, values schema.Values) error {
//	        return api.Create(ctx, values)
//	    }).
//	    Build(t)
//
// # One-Liner Shorthand
//
// For tests that only need a default engine, use the shorthand:
//
//	eng := formtest.Form(t, sections...)
//
// # Driving the Form
//
// The Must helpers fail the test with the engine's stored errors in
// the message when a transition is refused, so a validation gate shows
// up at the line that hit it:
//
//	formtest.Fill(t, eng, map[string]any{"name": "Ada"})
//	formtest.MustGoTo(t, eng, "review")
//	errs := formtest.SubmitExpectingErrors(t, eng)
//
// # State Assertions
//
// Assert on engine observables:
//
//	formtest.ExpectValue(t, eng, "name", "Ada")
//	formtest.ExpectError(t, eng, "email", "Email is required")
//	formtest.ExpectSection(t, eng, "details")
//	formtest.ExpectCompletion(t, eng, "basic", 100)
//
// # Recording Callbacks
//
// A Recorder captures every callback invocation for later inspection:
//
//	rec := &formtest.Recorder{}
//	eng := formtest.NewForm(sections...).WithCallbacks(rec.Callbacks()).Build(t)
//
//	eng.SetValue("name", "Ada")
//	if len(rec.FieldChanges) != 1 {
//	    t.Error("expected one recorded field change")
//	}
package formtest
