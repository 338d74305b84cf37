package schema

import (
	"errors"
	"strings"
	"testing"
)

func twoSections() []Section {
	return []Section{
		{
			ID:    "basic",
			Label: "Basic",
			Fields: []Field{
				{Name: "name", Label: "Name", Type: TypeText, Required: true},
				{Name: "email", Label: "Email", Type: TypeEmail, Required: true},
			},
		},
		{
			ID:    "details",
			Label: "Details",
			Fields: []Field{
				{Name: "description", Label: "Description", Type: TypeTextarea},
			},
		},
	}
}

func TestNewBuildsIndexes(t *testing.T) {
	s, err := New(twoSections())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if s.Len() != 2 {
		t.Errorf("expected 2 sections, got %d", s.Len())
	}
	if s.First().ID != "basic" {
		t.Errorf("expected first section basic, got %q", s.First().ID)
	}
	if got := s.IndexOf("details"); got != 1 {
		t.Errorf("expected details at index 1, got %d", got)
	}
	if got := s.IndexOf("missing"); got != -1 {
		t.Errorf("expected -1 for unknown section, got %d", got)
	}

	f, ok := s.Field("email")
	if !ok {
		t.Fatal("expected to find field email")
	}
	if f.Label != "Email" {
		t.Errorf("expected label Email, got %q", f.Label)
	}
	if got := s.SectionOf("description"); got != "details" {
		t.Errorf("expected description owned by details, got %q", got)
	}

	names := s.FieldNames()
	want := []string{"name", "email", "description"}
	if len(names) != len(want) {
		t.Fatalf("expected %d field names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("field name %d: expected %q, got %q", i, want[i], names[i])
		}
	}
}

func TestNewRejectsEmptySections(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, ErrNoSections) {
		t.Errorf("expected ErrNoSections, got %v", err)
	}
}

func TestNewRejectsDuplicateSectionID(t *testing.T) {
	_, err := New([]Section{
		{ID: "a", Fields: []Field{{Name: "x"}}},
		{ID: "a", Fields: []Field{{Name: "y"}}},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate section id") {
		t.Errorf("expected duplicate section id error, got %v", err)
	}
}

func TestNewRejectsDuplicateFieldAcrossSections(t *testing.T) {
	_, err := New([]Section{
		{ID: "a", Fields: []Field{{Name: "x"}}},
		{ID: "b", Fields: []Field{{Name: "x"}}},
	})
	if err == nil || !strings.Contains(err.Error(), `field "x"`) {
		t.Errorf("expected duplicate field error, got %v", err)
	}
}

func TestNewRejectsEmptyFieldName(t *testing.T) {
	_, err := New([]Section{
		{ID: "a", Fields: []Field{{Name: ""}}},
	})
	if err == nil || !strings.Contains(err.Error(), "empty name") {
		t.Errorf("expected empty name error, got %v", err)
	}
}

func TestNewRejectsInvertedArrayBounds(t *testing.T) {
	_, err := New([]Section{
		{ID: "a", Fields: []Field{{Name: "tags", Type: TypeArray, MinItems: 5, MaxItems: 2}}},
	})
	if err == nil || !strings.Contains(err.Error(), "min items") {
		t.Errorf("expected array bounds error, got %v", err)
	}
}

func TestNewAllowsEmptySectionFieldList(t *testing.T) {
	s, err := New([]Section{
		{ID: "a", Fields: []Field{{Name: "x"}}},
		{ID: "review", Label: "Review"},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	sec, ok := s.Section("review")
	if !ok {
		t.Fatal("expected to find review section")
	}
	if len(sec.Fields) != 0 {
		t.Errorf("expected 0 fields, got %d", len(sec.Fields))
	}
}

func TestDefaultValuesBackfill(t *testing.T) {
	sections := twoSections()
	sections[1].Fields[0].DefaultValue = "n/a"
	s, err := New(sections)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	initial := Values{"name": "John"}
	values := s.DefaultValues(initial)

	if values["name"] != "John" {
		t.Errorf("expected initial value preserved, got %v", values["name"])
	}
	if values["description"] != "n/a" {
		t.Errorf("expected default backfill n/a, got %v", values["description"])
	}
	if _, ok := values["email"]; ok {
		t.Error("field without default should stay absent")
	}
	if _, ok := initial["description"]; ok {
		t.Error("DefaultValues must not mutate the caller's map")
	}
}

func TestDefaultValuesDoesNotOverrideInitial(t *testing.T) {
	sections := twoSections()
	sections[0].Fields[0].DefaultValue = "fallback"
	s, err := New(sections)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	values := s.DefaultValues(Values{"name": "explicit"})
	if values["name"] != "explicit" {
		t.Errorf("initial value should win over default, got %v", values["name"])
	}
}

func TestValuesClone(t *testing.T) {
	v := Values{"a": 1}
	c := v.Clone()
	c["b"] = 2

	if _, ok := v["b"]; ok {
		t.Error("clone should not share storage with original")
	}
}

func TestSectionFieldNames(t *testing.T) {
	sec := twoSections()[0]
	names := sec.FieldNames()
	if len(names) != 2 || names[0] != "name" || names[1] != "email" {
		t.Errorf("expected [name email], got %v", names)
	}
}

func TestMustNewPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid schema")
		}
	}()
	MustNew(nil)
}
