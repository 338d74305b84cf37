package engine

import "github.com/formflow-dev/formflow/pkg/validate"

// GoTo activates the section with the given ID. Backward moves are
// unconditional. Forward moves validate the active section first when
// any validate flag is set; jumps past the next section additionally
// require AllowSectionSkipping. Unknown IDs and the active ID are
// no-ops. No-op while a submission is in flight.
func (e *Engine) GoTo(sectionID string) {
	e.mu.Lock()
	notify := e.goToLocked(sectionID)
	e.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Next advances to the section after the active one, validating the
// active section first when any validate flag is set. No-op on the
// last section and while a submission is in flight.
func (e *Engine) Next() {
	e.mu.Lock()
	notify := e.nextLocked()
	e.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Previous returns to the section before the active one. Backward
// moves never validate. No-op on the first section and while a
// submission is in flight.
func (e *Engine) Previous() {
	e.mu.Lock()
	notify := e.previousLocked()
	e.mu.Unlock()

	if notify != nil {
		notify()
	}
}

func (e *Engine) goToLocked(id string) func() {
	if e.submitting.Peek() {
		return nil
	}

	current := e.active.Peek()
	if id == current {
		return nil
	}

	target := e.schema.IndexOf(id)
	if target < 0 {
		e.logger.Debug("ignoring navigation to unknown section", "section", id)
		return nil
	}

	idx := e.schema.IndexOf(current)
	if target < idx {
		return e.activateLocked(id, current)
	}
	if target > idx+1 && !e.opts.AllowSectionSkipping {
		e.logger.Debug("ignoring forward skip", "from", current, "to", id)
		return nil
	}
	if !e.clearToLeaveLocked(current) {
		return nil
	}
	return e.activateLocked(id, current)
}

func (e *Engine) nextLocked() func() {
	if e.submitting.Peek() {
		return nil
	}

	current := e.active.Peek()
	idx := e.schema.IndexOf(current)
	if idx < 0 || idx >= e.schema.Len()-1 {
		return nil
	}
	if !e.clearToLeaveLocked(current) {
		return nil
	}
	return e.activateLocked(e.schema.SectionAt(idx+1).ID, current)
}

func (e *Engine) previousLocked() func() {
	if e.submitting.Peek() {
		return nil
	}

	current := e.active.Peek()
	idx := e.schema.IndexOf(current)
	if idx <= 0 {
		return nil
	}
	return e.activateLocked(e.schema.SectionAt(idx-1).ID, current)
}

// clearToLeaveLocked validates the active section ahead of a forward
// transition. On failure the errors are stored, the offending fields
// marked touched, and false returned. Gating is off when no validate
// flag is set. Caller must hold e.mu.
func (e *Engine) clearToLeaveLocked(sectionID string) bool {
	if !e.opts.validatesEver() {
		return true
	}

	sec, ok := e.schema.Section(sectionID)
	if !ok {
		return true
	}

	errs := validate.Section(sec, e.snapshotValues())
	if len(errs) == 0 {
		return true
	}

	e.storeErrorsLocked(errs)
	e.metrics.RecordNavigationBlocked(sectionID)
	e.logger.Debug("navigation blocked by validation",
		"section", sectionID,
		"errors", len(errs),
	)
	return false
}

// activateLocked switches the active section and returns the deferred
// OnSectionChange invocation, if any. Caller must hold e.mu.
func (e *Engine) activateLocked(id, previous string) func() {
	e.active.Set(id)
	e.metrics.RecordSectionChange()

	if e.cbs.OnSectionChange == nil {
		return nil
	}
	return func() {
		e.cbs.OnSectionChange(id, previous)
	}
}
