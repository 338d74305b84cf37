// Package engine implements the headless multi-section form engine:
// field values, per-field validation, touched tracking, section-gated
// navigation, completion metrics, and the submission lifecycle.
//
// This package includes:
//   - Engine: one instance drives one form
//   - Command: op-tagged dispatch mirroring the method API
//   - FieldState / SectionState: per-widget render data
//
// # Constructing an Engine
//
// An Engine is built from a schema plus options and callbacks. The
// widget layer stays external: it feeds (field, value) change events
// and blur events in, and renders from the engine's observables.
//
//	s := schema.MustNew([]schema.Section{
//	    {ID: "basic", Label: "Basics", Fields: []schema.Field{
//	        {Name: "title", Label: "Title", Type: schema.TypeText, Required: true},
//	    }},
//	})
//
//	eng, err := engine.New(engine.Config{
//	    Schema: s,
//	    Options: engine.Options{ValidateOnChange: true},
//	    Callbacks: engine.Callbacks{
//	        OnSubmit: func(ctx context.Context, values schema.Values) error {
//	            return api.Save(ctx, values)
//	        },
//	    },
//	})
//
// # Driving the Form
//
// Mutations are plain method calls. Invalid input never returns an
// error from mutators; refusals are observable through state (errors
// stored, active section unchanged):
//
//	eng.SetValue("title", "Hello")
//	eng.Blur("title")
//	eng.Next()                       // gated on the active section
//	err := eng.Submit(ctx)           // always validates the whole form
//
// # Rendering
//
// Renderers subscribe with Watch; every observable read inside the
// callback is tracked, so the callback re-runs when any of it changes:
//
//	stop := eng.Watch(func() {
//	    view.Render(eng.Values(), eng.Errors(), eng.ActiveSectionID())
//	})
//	defer stop()
//
// Watch callbacks run while the engine is applying updates and must
// not call engine mutators.
package engine
