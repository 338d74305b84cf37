package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/formflow-dev/formflow/pkg/reactive"
	"github.com/formflow-dev/formflow/pkg/telemetry"
	"github.com/formflow-dev/formflow/pkg/validate"
)

// SubmitState represents the current state of the submission lifecycle.
type SubmitState int

const (
	// SubmitIdle is the initial state before any Submit call.
	SubmitIdle SubmitState = iota

	// SubmitInFlight indicates the submit callback is running.
	SubmitInFlight

	// SubmitSucceeded indicates the last attempt completed successfully.
	SubmitSucceeded

	// SubmitFailed indicates the last attempt was rejected by validation
	// or the submit callback returned an error.
	SubmitFailed
)

// String returns a human-readable name for the submission state.
func (s SubmitState) String() string {
	switch s {
	case SubmitIdle:
		return "idle"
	case SubmitInFlight:
		return "in_flight"
	case SubmitSucceeded:
		return "succeeded"
	case SubmitFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Submit runs one submission attempt:
//
//  1. Returns ErrSubmitInFlight when an attempt is already running.
//  2. Validates the whole form. Submit always validates, whatever the
//     validate-on-change/blur/submit flags say. On failure the error
//     map replaces the stored errors, the offending fields are marked
//     touched, OnValidationError fires, and a *ValidationError is
//     returned. OnSubmit is not invoked.
//  3. Invokes OnSubmit with a snapshot of the values, outside the
//     engine lock. Mutations and navigation arriving meanwhile are
//     dropped.
//  4. A nil result marks the attempt succeeded (submitted and
//     succeeded turn true; ResetOnSubmit restores the initial values).
//     An error stores the general message under "general", marks the
//     attempt failed, and is returned wrapped.
func (e *Engine) Submit(ctx context.Context) error {
	e.mu.Lock()
	if e.submitting.Peek() {
		e.mu.Unlock()
		e.metrics.RecordSubmit(telemetry.ResultDropped, 0)
		e.logger.Debug("dropping submit while in flight")
		return ErrSubmitInFlight
	}

	attemptID := uuid.NewString()
	ctx, span := telemetry.StartSubmit(ctx, e.tracer, attemptID)

	errs := validate.All(e.schema, e.snapshotValues())
	if len(errs) > 0 {
		e.rejectLocked(errs)
		e.mu.Unlock()

		e.metrics.RecordSubmit(telemetry.ResultValidation, 0)
		e.metrics.RecordValidationErrors(len(errs))

		verr := &ValidationError{Fields: errs}
		telemetry.EndSubmit(span, telemetry.ResultValidation, verr, len(errs))
		e.logger.Debug("submit rejected by validation",
			"attempt_id", attemptID,
			"errors", len(errs),
		)
		if e.cbs.OnValidationError != nil {
			e.cbs.OnValidationError(errs)
		}
		return verr
	}

	reactive.Batch(func() {
		e.errors.Clear()
		e.submitting.Set(true)
		e.submitState.Set(SubmitInFlight)
		e.succeeded.Set(false)
	})
	snapshot := e.snapshotValues().Clone()
	e.mu.Unlock()

	e.logger.Info("submitting form", "attempt_id", attemptID)

	start := time.Now()
	var err error
	if e.cbs.OnSubmit != nil {
		err = e.cbs.OnSubmit(ctx, snapshot)
	}
	elapsed := time.Since(start)

	e.mu.Lock()
	if err != nil {
		reactive.Batch(func() {
			e.submitting.Set(false)
			e.submitState.Set(SubmitFailed)
			e.errors.SetKey(generalErrorKey, generalErrorMessage)
		})
		e.mu.Unlock()

		e.metrics.RecordSubmit(telemetry.ResultError, elapsed.Seconds())
		telemetry.EndSubmit(span, telemetry.ResultError, err, 0)
		e.logger.Error("submit failed",
			"attempt_id", attemptID,
			"duration", elapsed,
			"error", err,
		)
		return fmt.Errorf("formflow: submit: %w", err)
	}

	reactive.Batch(func() {
		e.submitting.Set(false)
		e.submitState.Set(SubmitSucceeded)
		e.submitted.Set(true)
		e.succeeded.Set(true)
		if e.opts.ResetOnSubmit {
			e.resetValuesLocked()
		}
	})
	e.mu.Unlock()

	e.metrics.RecordSubmit(telemetry.ResultSuccess, elapsed.Seconds())
	telemetry.EndSubmit(span, telemetry.ResultSuccess, nil, 0)
	e.logger.Info("submit succeeded",
		"attempt_id", attemptID,
		"duration", elapsed,
	)
	return nil
}

// rejectLocked replaces the stored errors with the submit-time
// validation result and marks the offending fields touched. The full
// check is authoritative at submit time: stale errors from earlier
// change/blur validation drop out. Caller must hold e.mu.
func (e *Engine) rejectLocked(errs map[string]string) {
	stored := make(map[string]string, len(errs))
	for k, v := range errs {
		stored[k] = v
	}

	reactive.Batch(func() {
		e.errors.Set(stored)
		for key := range errs {
			if _, isField := e.schema.Field(key); isField {
				e.touched.SetKey(key, true)
			}
		}
		e.submitState.Set(SubmitFailed)
		e.succeeded.Set(false)
	})
}

// Cancel invokes the OnCancel callback. The engine never mutates state
// on cancellation, even mid-submission; what cancel means is the
// caller's decision.
func (e *Engine) Cancel() {
	if e.cbs.OnCancel != nil {
		e.cbs.OnCancel()
	}
}
