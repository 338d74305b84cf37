package schema

import (
	"errors"
	"fmt"
)

// ErrNoSections is returned by New when the section list is empty.
var ErrNoSections = errors.New("formflow: schema needs at least one section")

// Schema is the validated, indexed form model. It is immutable after New.
type Schema struct {
	sections []Section

	// sectionIdx maps section ID to its position in sections.
	sectionIdx map[string]int

	// fields maps field name to the field definition.
	fields map[string]Field

	// fieldSection maps field name to its owning section's ID.
	fieldSection map[string]string

	// fieldOrder lists every field name in declaration order.
	fieldOrder []string
}

// New validates the section list and builds the indexed schema.
// It rejects empty forms, duplicate section IDs, duplicate or empty field
// names, and inverted array bounds.
func New(sections []Section) (*Schema, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}

	s := &Schema{
		sections:     sections,
		sectionIdx:   make(map[string]int, len(sections)),
		fields:       make(map[string]Field),
		fieldSection: make(map[string]string),
	}

	for i, sec := range sections {
		if sec.ID == "" {
			return nil, fmt.Errorf("formflow: section %d has an empty id", i)
		}
		if _, dup := s.sectionIdx[sec.ID]; dup {
			return nil, fmt.Errorf("formflow: duplicate section id %q", sec.ID)
		}
		s.sectionIdx[sec.ID] = i

		for _, f := range sec.Fields {
			if f.Name == "" {
				return nil, fmt.Errorf("formflow: section %q has a field with an empty name", sec.ID)
			}
			if prev, dup := s.fieldSection[f.Name]; dup {
				return nil, fmt.Errorf("formflow: field %q declared in sections %q and %q", f.Name, prev, sec.ID)
			}
			if f.MaxItems > 0 && f.MinItems > f.MaxItems {
				return nil, fmt.Errorf("formflow: field %q has min items %d above max items %d", f.Name, f.MinItems, f.MaxItems)
			}
			s.fields[f.Name] = f
			s.fieldSection[f.Name] = sec.ID
			s.fieldOrder = append(s.fieldOrder, f.Name)
		}
	}

	return s, nil
}

// MustNew is New for schemas known to be valid, typically package-level
// literals. It panics on error.
func MustNew(sections []Section) *Schema {
	s, err := New(sections)
	if err != nil {
		panic(err)
	}
	return s
}

// Sections returns the sections in navigation order.
// Callers must not mutate the returned slice.
func (s *Schema) Sections() []Section {
	return s.sections
}

// Len returns the number of sections.
func (s *Schema) Len() int {
	return len(s.sections)
}

// Section returns the section with the given ID.
func (s *Schema) Section(id string) (Section, bool) {
	i, ok := s.sectionIdx[id]
	if !ok {
		return Section{}, false
	}
	return s.sections[i], true
}

// SectionAt returns the section at position i in navigation order.
func (s *Schema) SectionAt(i int) Section {
	return s.sections[i]
}

// IndexOf returns the position of the section with the given ID, or -1.
func (s *Schema) IndexOf(id string) int {
	i, ok := s.sectionIdx[id]
	if !ok {
		return -1
	}
	return i
}

// First returns the first section.
func (s *Schema) First() Section {
	return s.sections[0]
}

// Field returns the field with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// SectionOf returns the ID of the section owning the named field, or "".
func (s *Schema) SectionOf(name string) string {
	return s.fieldSection[name]
}

// FieldNames returns every field name in declaration order.
// Callers must not mutate the returned slice.
func (s *Schema) FieldNames() []string {
	return s.fieldOrder
}

// DefaultValues returns initial merged with each field's DefaultValue for
// keys the caller did not supply. The initial map is not modified.
func (s *Schema) DefaultValues(initial Values) Values {
	out := make(Values, len(s.fieldOrder))
	for k, v := range initial {
		out[k] = v
	}
	for _, name := range s.fieldOrder {
		if _, ok := out[name]; ok {
			continue
		}
		if f := s.fields[name]; f.DefaultValue != nil {
			out[name] = f.DefaultValue
		}
	}
	return out
}
