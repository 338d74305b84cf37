package engine

import (
	"github.com/formflow-dev/formflow/pkg/reactive"
	"github.com/formflow-dev/formflow/pkg/schema"
	"github.com/formflow-dev/formflow/pkg/validate"
)

// SetValue merges one field value: the value signal updates, the field
// is marked touched, validate-on-change runs if enabled, and
// OnFieldChange fires. Writes to unknown fields are ignored. No-op
// while a submission is in flight.
func (e *Engine) SetValue(name string, value any) {
	e.mu.Lock()
	notify := e.setValueLocked(name, value)
	e.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// setValueLocked runs the change pipeline and returns the deferred
// OnFieldChange invocation, if any. Caller must hold e.mu.
func (e *Engine) setValueLocked(name string, value any) func() {
	if e.submitting.Peek() {
		return nil
	}

	f, ok := e.schema.Field(name)
	if !ok {
		e.logger.Debug("ignoring write to unknown field", "field", name)
		return nil
	}

	reactive.Batch(func() {
		e.values.SetKey(name, value)
		e.touched.SetKey(name, true)
		if e.opts.ValidateOnChange {
			e.applyFieldValidation(f, value)
		}
	})
	e.metrics.RecordFieldChange()

	if e.cbs.OnFieldChange == nil {
		return nil
	}
	sectionID := e.schema.SectionOf(name)
	return func() {
		e.cbs.OnFieldChange(name, value, sectionID)
	}
}

// Blur marks the field touched and, with validate-on-blur enabled,
// runs its checks against the current value. Unknown fields are
// ignored. No-op while a submission is in flight.
func (e *Engine) Blur(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.submitting.Peek() {
		return
	}

	f, ok := e.schema.Field(name)
	if !ok {
		e.logger.Debug("ignoring blur on unknown field", "field", name)
		return
	}

	reactive.Batch(func() {
		e.touched.SetKey(name, true)
		if e.opts.ValidateOnBlur {
			e.applyFieldValidation(f, e.values.Peek()[name])
		}
	})
}

// MarkAllTouched marks every declared field touched, surfacing stored
// errors that were hidden behind untouched fields. No-op while a
// submission is in flight.
func (e *Engine) MarkAllTouched() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.submitting.Peek() {
		return
	}

	all := make(map[string]bool, len(e.schema.FieldNames()))
	for _, name := range e.schema.FieldNames() {
		all[name] = true
	}
	e.touched.Set(all)
}

// SetError stores an error message under key. Keys must name a declared
// field, a section key, an array item, or "general"; anything else is
// ignored. No-op while a submission is in flight.
func (e *Engine) SetError(key, msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.submitting.Peek() {
		return
	}
	if !e.isErrorKey(key) {
		e.logger.Debug("ignoring error for unknown key", "key", key)
		return
	}
	e.errors.SetKey(key, msg)
}

// ClearError removes the error stored under key, if any. No-op while a
// submission is in flight.
func (e *Engine) ClearError(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.submitting.Peek() {
		return
	}
	e.errors.RemoveKey(key)
}

// ClearErrors removes every stored error. No-op while a submission is
// in flight.
func (e *Engine) ClearErrors() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.submitting.Peek() {
		return
	}
	e.errors.Clear()
}

// Reset restores the initial values (with field defaults backfilled),
// clears errors and touched marks, and puts the submission lifecycle
// back to idle. The active section does not move; navigation is the
// caller's. No-op while a submission is in flight.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.submitting.Peek() {
		return
	}

	reactive.Batch(func() {
		e.resetValuesLocked()
		e.submitState.Set(SubmitIdle)
		e.submitted.Set(false)
		e.succeeded.Set(false)
	})
}

// resetValuesLocked restores values and clears errors and touched.
// Submission flags and the active section are the caller's concern.
// Caller must hold e.mu.
func (e *Engine) resetValuesLocked() {
	reactive.Batch(func() {
		e.values.Set(e.seed.Clone())
		e.errors.Clear()
		e.touched.Clear()
	})
}

// applyFieldValidation stores or clears the field's error from a fresh
// check of the given value.
func (e *Engine) applyFieldValidation(f schema.Field, value any) {
	if msg := validate.Field(f, value); msg != "" {
		e.errors.SetKey(f.Name, msg)
	} else {
		e.errors.RemoveKey(f.Name)
	}
}

// storeErrorsLocked merges a validation result into the errors map and
// marks the offending fields touched. Caller must hold e.mu.
func (e *Engine) storeErrorsLocked(errs map[string]string) {
	reactive.Batch(func() {
		for key, msg := range errs {
			e.errors.SetKey(key, msg)
			if _, isField := e.schema.Field(key); isField {
				e.touched.SetKey(key, true)
			}
		}
	})
}

// isErrorKey reports whether key may appear in the errors map: a
// declared field, a declared section's key, an item key of a declared
// array field, or "general".
func (e *Engine) isErrorKey(key string) bool {
	if key == generalErrorKey {
		return true
	}
	if _, ok := e.schema.Field(key); ok {
		return true
	}
	if id, ok := validate.SectionID(key); ok {
		_, declared := e.schema.Section(id)
		return declared
	}
	if name, _, ok := splitItemKey(key); ok {
		if f, declared := e.schema.Field(name); declared && f.Type == schema.TypeArray {
			return true
		}
	}
	return false
}
