package engine

import (
	"reflect"
	"testing"

	"github.com/formflow-dev/formflow/pkg/schema"
)

func arraySections() []schema.Section {
	return []schema.Section{
		{ID: "s", Label: "S", Fields: []schema.Field{
			{Name: "tags", Label: "Tags", Type: schema.TypeArray, MaxItems: 3},
			{Name: "note", Label: "Note", Type: schema.TypeText},
		}},
	}
}

func TestAppendItem(t *testing.T) {
	e := newTestEngine(t, Config{
		Sections:      arraySections(),
		InitialValues: schema.Values{},
	})

	e.AppendItem("tags", "go")
	e.AppendItem("tags", "forms")

	want := []any{"go", "forms"}
	if got := e.Value("tags"); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if !e.IsTouched("tags") {
		t.Error("Expected append to mark the field touched")
	}
}

func TestAppendItemRespectsMaxItems(t *testing.T) {
	e := newTestEngine(t, Config{
		Sections:      arraySections(),
		InitialValues: schema.Values{"tags": []any{"a", "b", "c"}},
	})

	e.AppendItem("tags", "d")

	if got := len(arrayItems(e.Value("tags"))); got != 3 {
		t.Errorf("Expected append refused at max items, got %d items", got)
	}
}

func TestAppendItemNonArrayIsNoOp(t *testing.T) {
	e := newTestEngine(t, Config{
		Sections:      arraySections(),
		InitialValues: schema.Values{"note": "hi"},
	})

	e.AppendItem("note", "x")
	e.AppendItem("bogus", "x")

	if got := e.Value("note"); got != "hi" {
		t.Errorf("Expected non-array field untouched, got %v", got)
	}
}

func TestRemoveItemAt(t *testing.T) {
	e := newTestEngine(t, Config{
		Sections:      arraySections(),
		InitialValues: schema.Values{"tags": []any{"a", "b", "c"}},
	})

	e.RemoveItemAt("tags", 1)

	want := []any{"a", "c"}
	if got := e.Value("tags"); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestRemoveItemAtOutOfRangeIsNoOp(t *testing.T) {
	e := newTestEngine(t, Config{
		Sections:      arraySections(),
		InitialValues: schema.Values{"tags": []any{"a", "b"}},
	})

	e.RemoveItemAt("tags", -1)
	e.RemoveItemAt("tags", 2)

	if got := len(arrayItems(e.Value("tags"))); got != 2 {
		t.Errorf("Expected out-of-range removals ignored, got %d items", got)
	}
}

// The last remaining item is never removable, even when MinItems would
// allow an empty list.
func TestRemoveItemAtKeepsLastItem(t *testing.T) {
	e := newTestEngine(t, Config{
		Sections:      arraySections(),
		InitialValues: schema.Values{"tags": []any{"only"}},
	})

	e.RemoveItemAt("tags", 0)

	want := []any{"only"}
	if got := e.Value("tags"); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected last item kept, got %v", got)
	}
}

func TestRemoveItemAtReindexesErrors(t *testing.T) {
	e := newTestEngine(t, Config{
		Sections:      arraySections(),
		InitialValues: schema.Values{"tags": []any{"a", "b", "c"}},
	})
	e.SetError("tags.0", "zero")
	e.SetError("tags.1", "one")
	e.SetError("tags.2", "two")

	e.RemoveItemAt("tags", 1)

	errs := e.Errors()
	if errs["tags.0"] != "zero" {
		t.Errorf("Expected tags.0 preserved, got %q", errs["tags.0"])
	}
	if errs["tags.1"] != "two" {
		t.Errorf("Expected tags.2 shifted to tags.1, got %q", errs["tags.1"])
	}
	if _, ok := errs["tags.2"]; ok {
		t.Errorf("Expected tags.2 gone after shift, got %v", errs)
	}
}

func TestCanAddItem(t *testing.T) {
	e := newTestEngine(t, Config{
		Sections:      arraySections(),
		InitialValues: schema.Values{"tags": []any{"a", "b"}},
	})

	if !e.CanAddItem("tags") {
		t.Error("Expected room below max items")
	}

	e.AppendItem("tags", "c")
	if e.CanAddItem("tags") {
		t.Error("Expected no room at max items")
	}

	if e.CanAddItem("note") {
		t.Error("Expected non-array field to refuse items")
	}
	if e.CanAddItem("bogus") {
		t.Error("Expected unknown field to refuse items")
	}
}

func TestCanRemoveItem(t *testing.T) {
	e := newTestEngine(t, Config{
		Sections:      arraySections(),
		InitialValues: schema.Values{"tags": []any{"a", "b"}},
	})

	if !e.CanRemoveItem("tags") {
		t.Error("Expected two items to be removable")
	}

	e.RemoveItemAt("tags", 0)
	if e.CanRemoveItem("tags") {
		t.Error("Expected the last item to be unremovable")
	}
}

func TestSplitItemKey(t *testing.T) {
	tests := []struct {
		key   string
		name  string
		index int
		ok    bool
	}{
		{"tags.0", "tags", 0, true},
		{"tags.12", "tags", 12, true},
		{"a.b.3", "a.b", 3, true},
		{"tags", "", 0, false},
		{"tags.", "", 0, false},
		{"tags.x", "", 0, false},
		{"tags.-1", "", 0, false},
		{".0", "", 0, false},
	}

	for _, tt := range tests {
		name, index, ok := splitItemKey(tt.key)
		if ok != tt.ok || name != tt.name || index != tt.index {
			t.Errorf("splitItemKey(%q) = (%q, %d, %v), want (%q, %d, %v)",
				tt.key, name, index, ok, tt.name, tt.index, tt.ok)
		}
	}
}
