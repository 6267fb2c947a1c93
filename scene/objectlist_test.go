package scene

import "testing"

func TestObjectListEnsureSortedIsStableOnTies(t *testing.T) {
	l := NewObjectList(sceneListName)
	names := []string{"a", "b", "c", "d", "e"}
	priorities := []int{5, 5, 1, 5, 1}
	for i, n := range names {
		l.Add(&Entity{Name: n, UpdatePriority: priorities[i]})
	}
	l.EnsureSorted()

	var got []string
	l.Each(func(e *Entity) { got = append(got, e.Name) })

	want := []string{"a", "b", "d", "c", "e"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestObjectListRemoveUnlinks(t *testing.T) {
	l := NewObjectList("Dynamic")
	a := &Entity{Name: "a"}
	b := &Entity{Name: "b"}
	c := &Entity{Name: "c"}
	l.Add(a)
	l.Add(b)
	l.Add(c)

	l.Remove(b)
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	var got []string
	l.Each(func(e *Entity) { got = append(got, e.Name) })
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("unexpected order after remove: %v", got)
	}
	if b.list != nil {
		t.Fatal("removed entity still linked to its list")
	}
}

func TestObjectRegistryMembership(t *testing.T) {
	r := NewObjectRegistry("Enemies")
	a := &Entity{Name: "a"}
	b := &Entity{Name: "b"}
	r.Add(a)
	r.Add(b)
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	r.Remove(a)
	if r.Len() != 1 || r.At(0).Name != "b" {
		t.Fatalf("unexpected registry contents after remove")
	}
	if _, ok := a.registries[r]; ok {
		t.Fatal("removed entity still tracks registry membership")
	}
}
