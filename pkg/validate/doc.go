// Package validate evaluates field rules against form values.
//
// # Overview
//
// Validation is pure: the functions here read a schema and a values map
// and return error messages. They hold no state; the engine package owns
// storing results and deciding when to run them.
//
// A field reports at most one error per check, the first failing rule in
// the order: required, min/max, length, pattern. Empty values (nil,
// missing, or "") only fail the required check; all other rules pass on
// empty so optional fields stay quiet until filled in.
//
// Section-level validators report under a synthetic key derived from the
// section ID (see SectionKey), keeping field errors and section banners
// in one map.
package validate
