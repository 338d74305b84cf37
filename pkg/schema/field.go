package schema

import "regexp"

// FieldType identifies the kind of value a field holds. The engine never
// branches on the type beyond required/rule checks; widgets use it to pick
// a renderer.
type FieldType string

const (
	TypeText         FieldType = "text"
	TypeEmail        FieldType = "email"
	TypePassword     FieldType = "password"
	TypeNumber       FieldType = "number"
	TypeTextarea     FieldType = "textarea"
	TypeSelect       FieldType = "select"
	TypeCheckbox     FieldType = "checkbox"
	TypeRadio        FieldType = "radio"
	TypeDate         FieldType = "date"
	TypeTime         FieldType = "time"
	TypeBoolean      FieldType = "boolean"
	TypeArray        FieldType = "array"
	TypeAutocomplete FieldType = "autocomplete"
	TypeFile         FieldType = "file"
	TypeImage        FieldType = "image"
	TypeMarkdown     FieldType = "markdown"
	TypeRichText     FieldType = "richtext"
)

// Field describes one input in a form. Identity is Name, which must be
// unique across the whole form, not just its section.
type Field struct {
	// Name is the field's key in values, errors, and touched state.
	Name string

	// Label is the human-readable name used in validation messages.
	Label string

	// Type tells widgets which renderer to use.
	Type FieldType

	// Required makes an empty value a validation error.
	Required bool

	// Rule holds the optional value constraints. Nil means no constraints
	// beyond Required.
	Rule *Rule

	// DefaultValue backfills the initial values map when the caller did
	// not supply a value for this field.
	DefaultValue any

	// Disabled is render data for widgets; disabled fields still validate.
	Disabled bool

	// Placeholder and HelpText are render data for widgets.
	Placeholder string
	HelpText    string

	// Options lists the choices for select, radio, and autocomplete fields.
	Options []Option

	// MinItems and MaxItems bound array fields. MaxItems 0 means no cap.
	MinItems int
	MaxItems int
}

// Option is one choice for a select, radio, or autocomplete field.
type Option struct {
	Value string
	Label string
}

// Rule holds the optional validation constraints for a field. All set
// constraints are checked; the first violation in the order
// required, min/max, length, pattern produces the field's error.
type Rule struct {
	// Min and Max bound numeric values (inclusive).
	Min *float64
	Max *float64

	// MinLength and MaxLength bound the stringified value's rune count.
	MinLength *int
	MaxLength *int

	// Pattern must match the stringified value.
	Pattern *regexp.Regexp

	// Message, when set, replaces the default message for min/max, length,
	// and pattern violations. The required message is never overridden.
	Message string
}

// Float64 returns a pointer to v, for Rule bounds.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v, for Rule length bounds.
func Int(v int) *int { return &v }
