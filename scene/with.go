package scene

import "github.com/hatchlang/hatch/value"

// WithResolver returns a closure matching vm.ObjectListResolver's shape,
// letting `with("ClassName")` walk a named ObjectList or ObjectRegistry's
// current active+interactable entities without vm importing scene. Install
// it with vm.WithObjectListResolver(scene.WithResolver()) when wiring the
// Script Manager to a loaded Scene.
func (s *Scene) WithResolver() func(name string) ([]value.Value, bool) {
	return func(name string) ([]value.Value, bool) {
		if l, ok := s.lists[name]; ok {
			return l.scriptMembers(), true
		}
		if r, ok := s.registries[name]; ok {
			return r.scriptMembers(), true
		}
		return nil, false
	}
}

// scriptMembers collects the Script values of this list's active,
// interactable entities, per spec.md §4.3's with-statement semantics
// ("begin iterating active+interactable entities").
func (l *ObjectList) scriptMembers() []value.Value {
	var out []value.Value
	l.Each(func(e *Entity) {
		if !e.active || !e.Interactable || e.Script.Kind() != value.KindObject {
			return
		}
		out = append(out, e.Script)
	})
	return out
}

func (r *ObjectRegistry) scriptMembers() []value.Value {
	var out []value.Value
	r.Each(func(e *Entity) {
		if !e.active || !e.Interactable || e.Script.Kind() != value.KindObject {
			return
		}
		out = append(out, e.Script)
	})
	return out
}
