package scene

// PriorityPerLayer bounds the number of draw-group buckets a layer's
// render pass walks, per spec.md §3.5's PriorityLists array.
const PriorityPerLayer = 16

// DrawGroup is a bucket of entities sharing an integer draw Priority,
// stably sorted by Depth ascending before each render pass whenever a
// member's Depth changed or a new member was inserted.
type DrawGroup struct {
	entities    []*Entity
	needsSorting bool
}

func (g *DrawGroup) insert(e *Entity, idx int) {
	e.drawGroup = g
	e.drawGroupIdx = idx
	g.entities = append(g.entities, e)
	g.needsSorting = true
}

func (g *DrawGroup) remove(e *Entity) {
	for i, m := range g.entities {
		if m == e {
			g.entities = append(g.entities[:i], g.entities[i+1:]...)
			e.drawGroup = nil
			return
		}
	}
}

// MarkDirty flags the group for re-sort before its next Each call; call
// this after changing a member entity's Depth.
func (g *DrawGroup) MarkDirty() { g.needsSorting = true }

func (g *DrawGroup) ensureSorted() {
	if !g.needsSorting {
		return
	}
	sorted := make([]*Entity, len(g.entities))
	copy(sorted, g.entities)
	sorted = stableMergeSortEntities(sorted, func(a, b *Entity) bool {
		return a.Depth < b.Depth
	})
	g.entities = sorted
	g.needsSorting = false
}

// Each visits entities in Depth-ascending draw order, sorting first if
// the group was flagged dirty.
func (g *DrawGroup) Each(fn func(*Entity)) {
	g.ensureSorted()
	for _, e := range g.entities {
		fn(e)
	}
}

// PriorityLists holds PriorityPerLayer draw groups for one scene layer's
// render pass.
type PriorityLists struct {
	groups [PriorityPerLayer]DrawGroup
}

// Insert places e into the group named by e.Priority (clamped into range).
func (p *PriorityLists) Insert(e *Entity) {
	idx := clampPriority(e.Priority)
	p.groups[idx].insert(e, len(p.groups[idx].entities))
}

// Remove takes e out of whichever group it currently occupies.
func (p *PriorityLists) Remove(e *Entity) {
	if e.drawGroup != nil {
		e.drawGroup.remove(e)
	}
}

// Reinsert moves e to the group named by its (possibly just-changed)
// Priority field.
func (p *PriorityLists) Reinsert(e *Entity) {
	p.Remove(e)
	p.Insert(e)
}

// EachGroup visits every group in priority order (0..PriorityPerLayer-1).
func (p *PriorityLists) EachGroup(fn func(priority int, g *DrawGroup)) {
	for i := range p.groups {
		fn(i, &p.groups[i])
	}
}

func clampPriority(p int) int {
	if p < 0 {
		return 0
	}
	if p >= PriorityPerLayer {
		return PriorityPerLayer - 1
	}
	return p
}
