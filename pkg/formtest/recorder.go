package formtest

import (
	"context"

	"github.com/formflow-dev/formflow/pkg/engine"
	"github.com/formflow-dev/formflow/pkg/schema"
)

// FieldChange is one recorded OnFieldChange invocation.
type FieldChange struct {
	Name      string
	Value     any
	SectionID string
}

// SectionChange is one recorded OnSectionChange invocation.
type SectionChange struct {
	SectionID  string
	PreviousID string
}

// Recorder captures callback invocations so tests can assert on them
// afterwards. The zero value is ready to use; wire it in with
// Callbacks:
//
//	rec := &formtest.Recorder{}
//	eng := formtest.NewForm(sections...).WithCallbacks(rec.Callbacks()).Build(t)
//
// The engine invokes callbacks sequentially on the mutating goroutine,
// so a Recorder needs no locking as long as the test drives the engine
// from a single goroutine.
type Recorder struct {
	// SubmitErr, when set, is returned by the recorded OnSubmit so
	// tests can exercise the failure path.
	SubmitErr error

	FieldChanges     []FieldChange
	SectionChanges   []SectionChange
	ValidationErrors []map[string]string
	Submits          []schema.Values
	Cancels          int
}

// Callbacks returns a callback set that records into r.
func (r *Recorder) Callbacks() engine.Callbacks {
	return engine.Callbacks{
		OnSubmit: func(_ context.Context, values schema.Values) error {
			r.Submits = append(r.Submits, values.Clone())
			return r.SubmitErr
		},
		OnCancel: func() {
			r.Cancels++
		},
		OnSectionChange: func(sectionID, previousID string) {
			r.SectionChanges = append(r.SectionChanges, SectionChange{
				SectionID:  sectionID,
				PreviousID: previousID,
			})
		},
		OnFieldChange: func(name string, value any, sectionID string) {
			r.FieldChanges = append(r.FieldChanges, FieldChange{
				Name:      name,
				Value:     value,
				SectionID: sectionID,
			})
		},
		OnValidationError: func(errs map[string]string) {
			copied := make(map[string]string, len(errs))
			for k, v := range errs {
				copied[k] = v
			}
			r.ValidationErrors = append(r.ValidationErrors, copied)
		},
	}
}

// LastFieldChange returns the most recent recorded field change.
func (r *Recorder) LastFieldChange() (FieldChange, bool) {
	if len(r.FieldChanges) == 0 {
		return FieldChange{}, false
	}
	return r.FieldChanges[len(r.FieldChanges)-1], true
}
