// Package scene is the Scene Driver: the frame lifecycle, entity lists,
// tile layers, draw-group/priority sorting, and camera views a running
// script interacts with through the class system (component D). Entity
// list/draw-group ownership is grounded on phanxgames-willow's Node/Scene
// ownership model (scene.go, node.go) — a single owning Scene holding its
// tree of live objects and iterating it once per frame — generalized from
// willow's UI node tree to this engine's tile-platformer entity model
// (doubly linked update lists instead of a parent/child tree, since
// entities here are siblings in flat priority buckets, not a GUI hierarchy).
package scene

import "github.com/hatchlang/hatch/value"

// Activity controls whether an entity is updated/rendered this frame.
type Activity int

const (
	ActivityDisabled Activity = iota
	ActivityNever
	ActivityPaused
	ActivityAlways
	ActivityNormal
	ActivityBounds
	ActivityXBounds
	ActivityYBounds
	ActivityRBounds
)

// Persistence controls whether an entity survives a scene teardown.
type Persistence int

const (
	PersistNone Persistence = iota
	PersistScene
	PersistGame
)

// Rect is an axis-aligned on-screen hitbox/region, used by the Bounds
// family of Activity tests.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height && r.Y+r.Height > o.Y
}

// Entity is one scene-owned object: a position, an update/draw disposition,
// and linkage into the three parallel entity lists plus whatever draw
// group its Priority currently buckets it into. UpdateFn/RenderFn are the
// host's hook back into the script VM (typically a bound method on the
// entity's backing class instance); Entity itself carries no VM
// dependency so tilecollision and scene stay script-runtime-agnostic.
type Entity struct {
	Name string

	X, Y  float64
	Depth float64

	Activity      Activity
	Persistence   Persistence
	UpdatePriority int
	Priority      int // draw group index, [0, PriorityPerLayer)
	Interactable  bool
	OnScreenBox   Rect
	OnScreenRadius float64

	UpdateFn func(e *Entity)
	RenderFn func(e *Entity)

	// Script is the value.Instance this entity is the native backing for,
	// when it was spawned from a scripted class (see with.go's
	// WithResolver, which `with("ClassName")` walks through).
	Script value.Value

	// linkage, owned by whichever ObjectList currently holds this entity
	next, prev *Entity
	list       *ObjectList

	// registries this entity additionally belongs to
	registries map[*ObjectRegistry]struct{}

	drawGroup    *DrawGroup
	drawGroupIdx int

	active bool
}

// IsOnScreen evaluates the entity's Activity against the given views,
// per spec.md §4.5's on-screen determination rule.
func (e *Entity) IsOnScreen(views []*View) bool {
	switch e.Activity {
	case ActivityDisabled, ActivityNever:
		return false
	case ActivityAlways:
		return true
	case ActivityPaused, ActivityNormal:
		return true
	case ActivityBounds:
		for _, v := range views {
			if v.Bounds().Intersects(e.OnScreenBox) {
				return true
			}
		}
		return false
	case ActivityXBounds:
		for _, v := range views {
			b := v.Bounds()
			if e.OnScreenBox.X < b.X+b.Width && e.OnScreenBox.X+e.OnScreenBox.Width > b.X {
				return true
			}
		}
		return false
	case ActivityYBounds:
		for _, v := range views {
			b := v.Bounds()
			if e.OnScreenBox.Y < b.Y+b.Height && e.OnScreenBox.Y+e.OnScreenBox.Height > b.Y {
				return true
			}
		}
		return false
	case ActivityRBounds:
		for _, v := range views {
			b := v.Bounds()
			cx, cy := b.X+b.Width/2, b.Y+b.Height/2
			dx, dy := e.X-cx, e.Y-cy
			r := e.OnScreenRadius + (b.Width+b.Height)/2
			if dx*dx+dy*dy <= r*r {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (e *Entity) shouldUpdate() bool {
	return e.Activity != ActivityDisabled && e.Activity != ActivityNever
}
