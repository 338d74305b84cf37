// Package formflow provides the public API for the FormFlow form engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/formflow-dev/formflow"
//
// Usage:
//
//	eng, err := formflow.New(formflow.Config{
//		Sections: []formflow.Section{{
//			ID:    "basic",
//			Label: "Basic",
//			Fields: []formflow.Field{
//				{Name: "name", Label: "Name", Type: formflow.TypeText, Required: true},
//			},
//		}},
//	})
//	eng.SetValue("name", "Ada")
//	err = eng.Submit(ctx)
package formflow

import (
	"github.com/formflow-dev/formflow/pkg/engine"
	"github.com/formflow-dev/formflow/pkg/schema"
	"github.com/formflow-dev/formflow/pkg/validate"
)

// =============================================================================
// Engine
// =============================================================================

// Engine is the multi-section form state machine. It owns values,
// errors, touched marks, navigation, and the submission lifecycle.
type Engine = engine.Engine

// Config assembles everything an Engine needs.
type Config = engine.Config

// Options control validation timing and navigation policy.
type Options = engine.Options

// Callbacks are the caller's hooks into the form lifecycle.
type Callbacks = engine.Callbacks

// FieldState is the per-field render data a widget consumes.
type FieldState = engine.FieldState

// SectionState is the per-section render data a tab bar consumes.
type SectionState = engine.SectionState

// New builds an Engine from the given configuration.
func New(cfg Config) (*Engine, error) {
	return engine.New(cfg)
}

// =============================================================================
// Commands
// =============================================================================

// Command is a tagged mutation request for Engine.Apply.
type Command = engine.Command

// CommandOp tags a Command with the operation it requests.
type CommandOp = engine.CommandOp

const (
	CmdSetValue = engine.CmdSetValue
	CmdBlur     = engine.CmdBlur
	CmdGoTo     = engine.CmdGoTo
	CmdNext     = engine.CmdNext
	CmdPrevious = engine.CmdPrevious
	CmdSubmit   = engine.CmdSubmit
	CmdCancel   = engine.CmdCancel
	CmdReset    = engine.CmdReset
)

// =============================================================================
// Submission lifecycle
// =============================================================================

// SubmitState is the submission lifecycle state.
type SubmitState = engine.SubmitState

const (
	SubmitIdle      = engine.SubmitIdle
	SubmitInFlight  = engine.SubmitInFlight
	SubmitSucceeded = engine.SubmitSucceeded
	SubmitFailed    = engine.SubmitFailed
)

// ValidationError carries the field errors a rejected submit produced.
type ValidationError = engine.ValidationError

var (
	ErrSubmitInFlight = engine.ErrSubmitInFlight
	ErrValidation     = engine.ErrValidation
)

// =============================================================================
// Schema
// =============================================================================

// Field declares one form field.
type Field = schema.Field

// FieldType is the closed set of field kinds.
type FieldType = schema.FieldType

// Option is one choice of a select or radio field.
type Option = schema.Option

// Rule holds a field's optional validation bounds.
type Rule = schema.Rule

// Section is a named, ordered group of fields.
type Section = schema.Section

// Schema is the validated, indexed form model.
type Schema = schema.Schema

// Values maps field names to their current values.
type Values = schema.Values

const (
	TypeText         = schema.TypeText
	TypeEmail        = schema.TypeEmail
	TypePassword     = schema.TypePassword
	TypeNumber       = schema.TypeNumber
	TypeTextarea     = schema.TypeTextarea
	TypeSelect       = schema.TypeSelect
	TypeCheckbox     = schema.TypeCheckbox
	TypeRadio        = schema.TypeRadio
	TypeDate         = schema.TypeDate
	TypeTime         = schema.TypeTime
	TypeBoolean      = schema.TypeBoolean
	TypeArray        = schema.TypeArray
	TypeAutocomplete = schema.TypeAutocomplete
	TypeFile         = schema.TypeFile
	TypeImage        = schema.TypeImage
	TypeMarkdown     = schema.TypeMarkdown
	TypeRichText     = schema.TypeRichText
)

// NewSchema builds and validates a Schema from ordered sections.
func NewSchema(sections []Section) (*Schema, error) {
	return schema.New(sections)
}

// MustNewSchema is NewSchema that panics on error, for static schemas.
func MustNewSchema(sections []Section) *Schema {
	return schema.MustNew(sections)
}

// Float64 returns a pointer to v, for Rule bounds.
var Float64 = schema.Float64

// Int returns a pointer to v, for Rule length bounds.
var Int = schema.Int

// =============================================================================
// Validation
// =============================================================================

// ValidateField checks one field's value and returns the first failing
// rule's message, or "" when the value passes.
var ValidateField = validate.Field

// ValidateSection checks every field in a section plus the section's
// own validator, keyed by field name (or tab_<sectionID>).
var ValidateSection = validate.Section

// ValidateAll unions every section's errors; runs before submission.
var ValidateAll = validate.All
