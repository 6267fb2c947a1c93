package scene

// ObjectList is a doubly linked, insertion-order list of entities belonging
// to one class name — one of the three parallel lists (Static, Dynamic,
// Scene) spec.md §3.5 describes. The Scene variant additionally keeps a
// dirty flag so it can defer a merge-sort by UpdatePriority until one is
// actually needed, per the "entity sort" rule in spec.md §4.5.
type ObjectList struct {
	Name string

	head, tail *Entity
	count      int

	sortedByPriority bool
	needsSort        bool
}

func NewObjectList(name string) *ObjectList {
	return &ObjectList{Name: name, sortedByPriority: name == sceneListName}
}

const sceneListName = "Scene"

// Add appends e to the tail of the list.
func (l *ObjectList) Add(e *Entity) {
	e.list = l
	e.prev = l.tail
	e.next = nil
	if l.tail != nil {
		l.tail.next = e
	} else {
		l.head = e
	}
	l.tail = e
	l.count++
	if l.sortedByPriority {
		l.needsSort = true
	}
}

// Remove unlinks e from the list. No-op if e is not a member of l.
func (l *ObjectList) Remove(e *Entity) {
	if e.list != l {
		return
	}
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next, e.list = nil, nil, nil
	l.count--
}

// Len reports the number of entities currently linked.
func (l *ObjectList) Len() int { return l.count }

// Each visits every entity in current list order (head to tail).
func (l *ObjectList) Each(fn func(*Entity)) {
	for e := l.head; e != nil; {
		next := e.next // fn may remove e
		fn(e)
		e = next
	}
}

// MarkDirty flags the list (if it tracks UpdatePriority order) as needing
// a re-sort before its next traversal.
func (l *ObjectList) MarkDirty() {
	if l.sortedByPriority {
		l.needsSort = true
	}
}

// EnsureSorted performs a stable merge-sort by UpdatePriority descending
// when the list has been flagged dirty, satisfying the entity-sort-
// stability testable property (equal-priority entities keep insertion
// order).
func (l *ObjectList) EnsureSorted() {
	if !l.sortedByPriority || !l.needsSort {
		return
	}
	items := make([]*Entity, 0, l.count)
	for e := l.head; e != nil; e = e.next {
		items = append(items, e)
	}
	items = stableMergeSortEntities(items, func(a, b *Entity) bool {
		return a.UpdatePriority > b.UpdatePriority
	})
	l.relink(items)
	l.needsSort = false
}

func (l *ObjectList) relink(items []*Entity) {
	l.head, l.tail = nil, nil
	for _, e := range items {
		e.prev, e.next = nil, nil
	}
	for _, e := range items {
		e.prev = l.tail
		if l.tail != nil {
			l.tail.next = e
		} else {
			l.head = e
		}
		l.tail = e
	}
}

// stableMergeSortEntities is a textbook bottom-up stable merge sort; used
// instead of sort.SliceStable so the scene-list sort is guaranteed stable
// without relying on the standard sort package's (documented-stable but
// here explicit, per spec.md §8's named testable property) behavior.
func stableMergeSortEntities(items []*Entity, less func(a, b *Entity) bool) []*Entity {
	n := len(items)
	if n < 2 {
		return items
	}
	buf := make([]*Entity, n)
	copy(buf, items)
	src, dst := items, buf
	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			mid := min(i+width, n)
			hi := min(i+2*width, n)
			merge(src, dst, i, mid, hi, less)
		}
		src, dst = dst, src
	}
	return src
}

func merge(src, dst []*Entity, lo, mid, hi int, less func(a, b *Entity) bool) {
	i, j := lo, mid
	for k := lo; k < hi; k++ {
		switch {
		case i < mid && (j >= hi || !less(src[j], src[i])):
			dst[k] = src[i]
			i++
		default:
			dst[k] = src[j]
			j++
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ObjectRegistry is an index-ordered collection an entity can additionally
// belong to regardless of which ObjectList owns it (spec.md §3.5: "may
// additionally belong to any number of ObjectRegistrys").
type ObjectRegistry struct {
	Name    string
	members []*Entity
}

func NewObjectRegistry(name string) *ObjectRegistry {
	return &ObjectRegistry{Name: name}
}

func (r *ObjectRegistry) Add(e *Entity) {
	if e.registries == nil {
		e.registries = map[*ObjectRegistry]struct{}{}
	}
	if _, ok := e.registries[r]; ok {
		return
	}
	e.registries[r] = struct{}{}
	r.members = append(r.members, e)
}

func (r *ObjectRegistry) Remove(e *Entity) {
	if e.registries != nil {
		delete(e.registries, r)
	}
	for i, m := range r.members {
		if m == e {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return
		}
	}
}

func (r *ObjectRegistry) Len() int { return len(r.members) }

func (r *ObjectRegistry) At(i int) *Entity { return r.members[i] }

// Each visits registry members in index order.
func (r *ObjectRegistry) Each(fn func(*Entity)) {
	for _, e := range r.members {
		fn(e)
	}
}
