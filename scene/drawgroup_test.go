package scene

import "testing"

func TestDrawGroupSortsByDepthStably(t *testing.T) {
	var p PriorityLists
	entities := []*Entity{
		{Name: "back", Depth: 10, Priority: 2},
		{Name: "mid1", Depth: 5, Priority: 2},
		{Name: "mid2", Depth: 5, Priority: 2},
		{Name: "front", Depth: 0, Priority: 2},
	}
	for _, e := range entities {
		p.Insert(e)
	}

	var got []string
	p.EachGroup(func(_ int, g *DrawGroup) {
		g.Each(func(e *Entity) { got = append(got, e.Name) })
	})

	want := []string{"front", "mid1", "mid2", "back"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q want %q (full %v)", i, got[i], want[i], got)
		}
	}
}

func TestPriorityListsClampsOutOfRangePriority(t *testing.T) {
	var p PriorityLists
	e := &Entity{Name: "offscale", Priority: 99}
	p.Insert(e)
	if e.drawGroup != &p.groups[PriorityPerLayer-1] {
		t.Fatal("entity with out-of-range priority was not clamped into the top group")
	}
}

func TestPriorityListsReinsertMovesGroup(t *testing.T) {
	var p PriorityLists
	e := &Entity{Name: "mover", Priority: 0}
	p.Insert(e)
	if e.drawGroup != &p.groups[0] {
		t.Fatal("entity not inserted into group 0")
	}
	e.Priority = 3
	p.Reinsert(e)
	if e.drawGroup != &p.groups[3] {
		t.Fatal("Reinsert did not move entity to its new priority group")
	}
	if len(p.groups[0].entities) != 0 {
		t.Fatal("Reinsert left a stale reference in the old group")
	}
}
