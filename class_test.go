package classattr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestClass_PlainAttributes verifies ordinary (non-cell) attributes behave
// like plain storage: class table, inheritance, instance dictionary.
func TestClass_PlainAttributes(t *testing.T) {
	base := NewClass("Base", nil, Attrs{
		"kind":  "base",
		"limit": 10,
	})
	child := NewClass("Child", []*Class{base}, Attrs{
		"kind": "child",
	})

	AssertValue(t, child, "kind", "child")
	AssertValue(t, child, "limit", 10)

	inst := child.New()
	AssertValue(t, inst, "limit", 10)

	// Instance writes for plain names land in the instance dictionary and
	// shadow the class value for that instance only.
	if err := inst.Set("limit", 99); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	AssertValue(t, inst, "limit", 99)
	AssertValue(t, child, "limit", 10)

	other := child.New()
	AssertValue(t, other, "limit", 10)
}

// TestClass_AttributeNotFound covers the missing-name paths.
func TestClass_AttributeNotFound(t *testing.T) {
	cls := NewClass("Empty", nil, nil)

	if _, err := cls.Get("missing"); !errors.Is(err, ErrAttributeNotFound) {
		t.Errorf("class Get error = %v, want ErrAttributeNotFound", err)
	}
	if err := cls.Delete("missing"); !errors.Is(err, ErrAttributeNotFound) {
		t.Errorf("class Delete error = %v, want ErrAttributeNotFound", err)
	}

	inst := cls.New()
	if _, err := inst.Get("missing"); !errors.Is(err, ErrAttributeNotFound) {
		t.Errorf("instance Get error = %v, want ErrAttributeNotFound", err)
	}
	if err := inst.Delete("missing"); !errors.Is(err, ErrAttributeNotFound) {
		t.Errorf("instance Delete error = %v, want ErrAttributeNotFound", err)
	}
}

// TestClass_MustGetPanics verifies MustGet panics on a missing attribute.
func TestClass_MustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGet did not panic for missing attribute")
		}
	}()
	NewClass("Empty", nil, nil).MustGet("missing")
}

// TestClass_UngovernedShadowing demonstrates the gap this package closes:
// without an Authority, class-level assignment replaces a cell instead of
// writing through it.
func TestClass_UngovernedShadowing(t *testing.T) {
	cell := NewValue(1, "")
	cls := NewClass("Plain", nil, Attrs{"value": cell})

	// Instance access still goes through the cell.
	inst := cls.New()
	AssertValue(t, inst, "value", 1)
	if err := inst.Set("value", 2); err != nil {
		t.Fatalf("instance Set failed: %v", err)
	}
	v, _ := cell.Read(Receiver{})
	if v != 2 {
		t.Errorf("cell value = %v, want 2 (instance write should funnel through)", v)
	}

	// Class-level assignment plain-overwrites the cell.
	if err := cls.Set("value", 3); err != nil {
		t.Fatalf("class Set failed: %v", err)
	}
	v, _ = cell.Read(Receiver{})
	if v != 2 {
		t.Errorf("cell value = %v after class Set; expected plain overwrite to leave it at 2", v)
	}
	AssertValue(t, cls, "value", 3)
}

// TestClass_StrippedTable verifies governed names never appear in the class's
// own table, while plain names do.
func TestClass_StrippedTable(t *testing.T) {
	auth := NewAuthority(nil)
	cls := auth.Build("Mixed", nil, Attrs{
		"shared":  NewValue(1, ""),
		"plain":   "hello",
		"helper":  func() string { return "method" },
		"derived": Property(func() any { return 2 }),
	})

	// The stripped table holds the plain entries; the cells reappear as
	// descriptor placements installed by the placement procedure.
	want := []string{"derived", "helper", "plain", "shared"}
	if diff := cmp.Diff(want, cls.AttrNames()); diff != "" {
		t.Errorf("AttrNames mismatch (-want +got):\n%s", diff)
	}

	if _, ok := cls.attrs["shared"]; ok {
		t.Error("governed name found in plain table; it would shadow the shared cell")
	}
	if _, ok := cls.cells["shared"]; !ok {
		t.Error("governed name missing its descriptor placement")
	}
	if _, ok := cls.attrs["plain"]; !ok {
		t.Error("plain name missing from the class table")
	}
}

// TestClass_MRODiamond verifies resolution order walks depth-first, left to
// right, visiting each class once.
func TestClass_MRODiamond(t *testing.T) {
	root := NewClass("Root", nil, Attrs{"who": "root", "only": "root"})
	left := NewClass("Left", []*Class{root}, Attrs{"who": "left"})
	right := NewClass("Right", []*Class{root}, Attrs{"who": "right"})
	bottom := NewClass("Bottom", []*Class{left, right}, nil)

	AssertValue(t, bottom, "who", "left")
	AssertValue(t, bottom, "only", "root")

	var names []string
	for _, k := range bottom.mro() {
		names = append(names, k.name)
	}
	want := []string{"Bottom", "Left", "Root", "Right"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("mro mismatch (-want +got):\n%s", diff)
	}
}

// TestClass_DeletePlain verifies deletion of plain attributes at both levels.
func TestClass_DeletePlain(t *testing.T) {
	cls := NewClass("D", nil, Attrs{"gone": 1})
	if err := cls.Delete("gone"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cls.Get("gone"); !errors.Is(err, ErrAttributeNotFound) {
		t.Errorf("Get after Delete = %v, want ErrAttributeNotFound", err)
	}

	inst := NewClass("E", nil, nil).New()
	if err := inst.Set("temp", true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := inst.Delete("temp"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := inst.Get("temp"); !errors.Is(err, ErrAttributeNotFound) {
		t.Errorf("Get after Delete = %v, want ErrAttributeNotFound", err)
	}
}

// TestClass_InstanceDictLosesToCell verifies data-descriptor precedence: a
// cell on the class wins over the instance dictionary in both directions.
func TestClass_InstanceDictLosesToCell(t *testing.T) {
	auth := NewAuthority(nil)
	cls := auth.Build("P", nil, Attrs{"value": NewValue("cell", "")})
	inst := cls.New()

	// Even with a same-named entry forced into the instance dictionary, the
	// cell governs.
	inst.attrs["value"] = "instance"
	AssertValue(t, inst, "value", "cell")

	if err := inst.Set("value", "written"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	AssertValue(t, cls, "value", "written")
}

func BenchmarkInstanceGet_Plain(b *testing.B) {
	cls := NewClass("Bench", nil, Attrs{"value": 1})
	inst := cls.New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := inst.Get("value"); err != nil {
			b.Fatal(err)
		}
	}
}
