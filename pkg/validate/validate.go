package validate

import (
	"strconv"
	"strings"

	"github.com/formflow-dev/formflow/pkg/schema"
)

// sectionKeyPrefix marks error-map keys carrying section-level messages.
// The "tab" terminology is the admin-UI convention callers key off.
const sectionKeyPrefix = "tab_"

// SectionKey returns the error-map key under which a section-level
// validation message is stored.
func SectionKey(sectionID string) string {
	return sectionKeyPrefix + sectionID
}

// IsSectionKey reports whether an error-map key carries a section-level
// message rather than a field error.
func IsSectionKey(key string) bool {
	return strings.HasPrefix(key, sectionKeyPrefix)
}

// SectionID extracts the section ID from a section-level error key.
// ok is false when the key is not a section key.
func SectionID(key string) (id string, ok bool) {
	return strings.CutPrefix(key, sectionKeyPrefix)
}

// Field checks one value against its field definition. It returns the
// first failing rule's message, or "" when the value is valid.
//
// Check order: required, then min/max for numeric values, then
// minLength/maxLength on the stringified value, then pattern. Empty
// values only fail required; every other rule passes on empty.
func Field(f schema.Field, value any) string {
	empty := IsEmpty(value)

	if f.Required && empty {
		return f.Label + " is required"
	}
	if empty || f.Rule == nil {
		return ""
	}

	r := f.Rule

	if r.Min != nil || r.Max != nil {
		if n, ok := toNumber(value); ok {
			if r.Min != nil && n < *r.Min {
				return ruleMessage(r, f.Label+" must be at least "+formatBound(*r.Min))
			}
			if r.Max != nil && n > *r.Max {
				return ruleMessage(r, f.Label+" must be at most "+formatBound(*r.Max))
			}
		}
	}

	if r.MinLength != nil || r.MaxLength != nil {
		length := len([]rune(toString(value)))
		if r.MinLength != nil && length < *r.MinLength {
			return ruleMessage(r, f.Label+" must be at least "+strconv.Itoa(*r.MinLength)+" characters")
		}
		if r.MaxLength != nil && length > *r.MaxLength {
			return ruleMessage(r, f.Label+" must be at most "+strconv.Itoa(*r.MaxLength)+" characters")
		}
	}

	if r.Pattern != nil && !r.Pattern.MatchString(toString(value)) {
		return ruleMessage(r, f.Label+" format is invalid")
	}

	return ""
}

// Section validates every field in the section against values and then
// runs the section-level validator, storing any non-empty result under
// SectionKey(sec.ID). Disabled fields still validate; widgets prevent
// editing, not checking.
func Section(sec schema.Section, values schema.Values) map[string]string {
	errs := make(map[string]string)

	for _, f := range sec.Fields {
		if msg := Field(f, values[f.Name]); msg != "" {
			errs[f.Name] = msg
		}
	}

	if sec.Validate != nil {
		if msg := sec.Validate(values); msg != "" {
			errs[SectionKey(sec.ID)] = msg
		}
	}

	return errs
}

// All validates every section and unions the results. Field names are
// unique across the form and section keys are namespaced, so the union
// cannot collide.
func All(s *schema.Schema, values schema.Values) map[string]string {
	errs := make(map[string]string)
	for _, sec := range s.Sections() {
		for k, v := range Section(sec, values) {
			errs[k] = v
		}
	}
	return errs
}

// ruleMessage applies the rule's custom message when set. The required
// message is produced before rules are consulted and is never overridden.
func ruleMessage(r *schema.Rule, fallback string) string {
	if r.Message != "" {
		return r.Message
	}
	return fallback
}
