package value

// GC is a stop-the-world mark-and-sweep collector over every Obj allocated
// through it. A collection runs only when a caller invokes Collect:
// neither package vm nor package scene calls it, and there is no
// RequestGarbageCollection entry point. Roots are supplied by the caller
// at collection time; pinned objects are always kept.
type GC struct {
	objects []Obj
	marked  map[Obj]bool
	pinned  map[Obj]bool
}

func NewGC() *GC {
	return &GC{marked: map[Obj]bool{}, pinned: map[Obj]bool{}}
}

// Register adds a newly allocated Obj to the heap before it is handed to
// scripts, per §4.1's allocation invariant.
func (gc *GC) Register(o Obj) Obj {
	gc.objects = append(gc.objects, o)
	return o
}

// Pin marks o as a host registration that must never be swept, regardless
// of reachability from the root set (e.g. a native class kept alive for
// the lifetime of the process).
func (gc *GC) Pin(o Obj) {
	gc.pinned[o] = true
}

func (gc *GC) Unpin(o Obj) {
	delete(gc.pinned, o)
}

// MarkObj marks o and recursively marks everything it references. Safe to
// call repeatedly; already-marked objects short-circuit.
func (gc *GC) MarkObj(o Obj) {
	if o == nil || gc.marked[o] {
		return
	}
	gc.marked[o] = true
	o.Mark(gc)
}

// MarkValue marks the Obj held by v, if v is an object-kind Value.
func (gc *GC) MarkValue(v Value) {
	if v.kind == KindObject || v.kind == KindError {
		gc.MarkObj(v.obj)
	}
}

// Collect runs one full mark-and-sweep pass given the current root set,
// returning the number of objects reclaimed.
func (gc *GC) Collect(roots []Value) int {
	gc.marked = make(map[Obj]bool, len(gc.objects))
	for o := range gc.pinned {
		gc.MarkObj(o)
	}
	for _, r := range roots {
		gc.MarkValue(r)
	}

	live := gc.objects[:0:0]
	reclaimed := 0
	for _, o := range gc.objects {
		if gc.marked[o] {
			live = append(live, o)
		} else {
			reclaimed++
		}
	}
	gc.objects = live
	return reclaimed
}

// Count returns the number of objects currently tracked by the heap.
func (gc *GC) Count() int {
	return len(gc.objects)
}
