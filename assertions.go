package classattr

import (
	"fmt"
	"reflect"
	"testing"
)

// AssertValue verifies that reading name through obj yields want.
func AssertValue(t *testing.T, obj Object, name string, want any) {
	t.Helper()

	got, err := obj.Get(name)
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", name, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get(%q) = %v, want %v", name, got, want)
	}
}

// AssertShared verifies the sharing-group property for name across members:
// writing through any member and reading through any other yields the
// just-written value, whichever member performs the write.
func AssertShared(t *testing.T, name string, members ...Object) {
	t.Helper()

	if len(members) < 2 {
		t.Fatalf("AssertShared needs at least 2 members, got %d", len(members))
	}

	for i, writer := range members {
		probe := fmt.Sprintf("shared-probe-%d", i)
		if err := writer.Set(name, probe); err != nil {
			t.Fatalf("member %d: Set(%q) failed: %v", i, name, err)
		}
		for j, reader := range members {
			got, err := reader.Get(name)
			if err != nil {
				t.Fatalf("member %d: Get(%q) failed: %v", j, name, err)
			}
			if got != any(probe) {
				t.Errorf("write via member %d not visible via member %d: got %v, want %q",
					i, j, got, probe)
			}
		}
	}

	t.Logf("✓ %q shared across %d members", name, len(members))
}

// AssertDisjoint verifies that a and b do NOT share storage for name: a write
// through a must not be observable through b.
func AssertDisjoint(t *testing.T, name string, a, b Object) {
	t.Helper()

	before, err := b.Get(name)
	if err != nil {
		t.Fatalf("Get(%q) on second member failed: %v", name, err)
	}

	probe := "disjoint-probe"
	if err := a.Set(name, probe); err != nil {
		t.Fatalf("Set(%q) on first member failed: %v", name, err)
	}

	after, err := b.Get(name)
	if err != nil {
		t.Fatalf("Get(%q) on second member failed: %v", name, err)
	}
	if after == any(probe) {
		t.Errorf("write through first member leaked to second: %v", after)
	}
	if !reflect.DeepEqual(after, before) {
		t.Errorf("second member changed from %v to %v after disjoint write", before, after)
	}

	t.Logf("✓ %q disjoint between %v and %v", name, a, b)
}

// AssertGoverned verifies that name on cls is governed by a Cell held by the
// class's Authority, so class-level assignment funnels through it.
func AssertGoverned(t *testing.T, cls *Class, name string) {
	t.Helper()

	if cls.authority == nil {
		t.Fatalf("%v has no authority", cls)
	}
	if cls.governingCell(name) == nil {
		t.Errorf("%v.%s is not governed by its authority", cls, name)
	}
}
