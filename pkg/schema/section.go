package schema

// Values maps field names to their current values.
type Values map[string]any

// Clone returns a shallow copy of the values map.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Section groups an ordered set of fields under one tab. Section order
// defines the navigation sequence.
type Section struct {
	// ID identifies the section; unique within the form.
	ID string

	// Label and Description are render data for the tab header.
	Label       string
	Description string

	// Fields are the section's inputs, in render order.
	Fields []Field

	// Disabled is render data for the tab header; disabled sections still
	// participate in navigation and validation.
	Disabled bool

	// Validate is an optional section-level check across field values.
	// A non-empty return is stored under the section's error key.
	Validate func(Values) string
}

// FieldNames returns the names of the section's fields in order.
func (s Section) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}
