package engine

import (
	"github.com/formflow-dev/formflow/pkg/reactive"
	"github.com/formflow-dev/formflow/pkg/schema"
	"github.com/formflow-dev/formflow/pkg/validate"
)

// buildProgress creates the per-section completion and validity memos.
// Memos recompute lazily from the values signal, so tab headers that
// subscribe via Watch re-render only when values actually change.
func (e *Engine) buildProgress() {
	e.completion = make(map[string]*reactive.Memo[float64], e.schema.Len())
	e.validity = make(map[string]*reactive.Memo[bool], e.schema.Len())

	for _, sec := range e.schema.Sections() {
		sec := sec
		e.completion[sec.ID] = reactive.NewMemo(func() float64 {
			return sectionCompletion(sec, schema.Values(e.values.Get()))
		})
		e.validity[sec.ID] = reactive.NewMemo(func() bool {
			return len(validate.Section(sec, schema.Values(e.values.Get()))) == 0
		})
	}
}

// Completion returns the section's fill percentage, 0 to 100. A section
// without fields counts as fully complete. Unknown IDs return 0.
func (e *Engine) Completion(sectionID string) float64 {
	m, ok := e.completion[sectionID]
	if !ok {
		return 0
	}
	return m.Get()
}

// Valid reports whether the section currently passes validation. The
// check runs against live values, independent of stored errors.
// Unknown IDs return false.
func (e *Engine) Valid(sectionID string) bool {
	m, ok := e.validity[sectionID]
	if !ok {
		return false
	}
	return m.Get()
}

// sectionCompletion counts the fields holding a non-empty value. The
// emptiness test is the validator's: nil, absent, and "" are empty.
func sectionCompletion(sec schema.Section, values schema.Values) float64 {
	if len(sec.Fields) == 0 {
		return 100
	}

	filled := 0
	for _, f := range sec.Fields {
		if !validate.IsEmpty(values[f.Name]) {
			filled++
		}
	}
	return float64(filled) / float64(len(sec.Fields)) * 100
}
