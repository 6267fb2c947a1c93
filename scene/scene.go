package scene

import (
	"github.com/rs/zerolog"

	"github.com/hatchlang/hatch/tilecollision"
)

// FixedStep is the interval between FixedUpdate ticks, matching the
// engine's 60Hz physics step.
const FixedStep = 1.0 / 60.0

// Scene owns the node/entity tree, layer grid, camera views, and draw
// groups for one loaded level, the same way willow.Scene owns its node
// tree and camera list (scene.go) — generalized here from a GUI node tree
// to the three parallel entity lists and per-layer priority lists spec.md
// §3.5 describes.
type Scene struct {
	Static  *ObjectList
	Dynamic *ObjectList
	Scene   *ObjectList

	lists      map[string]*ObjectList
	registries map[string]*ObjectRegistry

	Layers   []*Layer
	Tilesets []*Tileset
	Views    [MaxSceneViews]*View

	Priority []*PriorityLists // one set of draw groups per layer

	collisionWorld *tilecollision.World

	fixedAccumulator float64

	// NextScene/DoRestart are set by script callbacks during Update/
	// FixedUpdate; AfterScene consumes them at the end of the frame.
	NextScene string
	DoRestart bool

	OnGlobalFixedUpdate func()
	OnGC                func()

	TileAnimationEnabled bool
	TileAnimationPaused  bool

	log zerolog.Logger
}

func NewScene() *Scene {
	s := &Scene{
		Static:               NewObjectList("Static"),
		Dynamic:              NewObjectList("Dynamic"),
		Scene:                NewObjectList(sceneListName),
		lists:                map[string]*ObjectList{},
		registries:           map[string]*ObjectRegistry{},
		TileAnimationEnabled: true,
		log:                  zerolog.Nop(),
	}
	for _, l := range []*ObjectList{s.Static, s.Dynamic, s.Scene} {
		s.lists[l.Name] = l
	}
	return s
}

// SetLogger installs the structured logger this Scene Driver uses for
// entity lifecycle and scene-transition diagnostics, injected the same way
// vm.WithLogger/script.Manager.SetLogger are rather than reached for
// globally.
func (s *Scene) SetLogger(l zerolog.Logger) {
	s.log = l
}

// ListNamed returns (creating if necessary) the ObjectList for a given
// class name, used both by entity spawning and by `with("ClassName")`.
func (s *Scene) ListNamed(name string) *ObjectList {
	if l, ok := s.lists[name]; ok {
		return l
	}
	l := NewObjectList(name)
	s.lists[name] = l
	return l
}

// RegistryNamed returns (creating if necessary) a named ObjectRegistry.
func (s *Scene) RegistryNamed(name string) *ObjectRegistry {
	if r, ok := s.registries[name]; ok {
		return r
	}
	r := NewObjectRegistry(name)
	s.registries[name] = r
	return r
}

// AddEntity links e into its class-named ObjectList, the Scene update
// list, and the draw group matching its current Priority/layer.
func (s *Scene) AddEntity(className string, e *Entity, layerIndex int) {
	e.active = true
	s.ListNamed(className).Add(e)
	s.Scene.Add(e)
	if layerIndex >= 0 && layerIndex < len(s.Priority) {
		s.Priority[layerIndex].Insert(e)
	}
	s.log.Debug().Str("class", className).Int("layer", layerIndex).Msg("entity added")
}

// RemoveEntity unlinks e from every list/registry/draw group it belongs
// to, per spec.md §3.6's scene-unload rule.
func (s *Scene) RemoveEntity(e *Entity) {
	e.active = false
	if e.list != nil {
		e.list.Remove(e)
	}
	s.Scene.Remove(e)
	if e.drawGroup != nil {
		e.drawGroup.remove(e)
	}
	for r := range e.registries {
		r.Remove(e)
	}
	s.log.Debug().Str("entity", e.Name).Msg("entity removed")
}

// CollisionWorld exposes the tilecollision.World view over this scene's
// layers, building it lazily from the current Layers slice.
func (s *Scene) CollisionWorld() *tilecollision.World {
	if s.collisionWorld == nil {
		s.rebuildCollisionWorld()
	}
	return s.collisionWorld
}

func (s *Scene) rebuildCollisionWorld() {
	layers := make([]*tilecollision.Layer, len(s.Layers))
	for i, l := range s.Layers {
		layers[i] = l.ToCollisionLayer()
	}
	s.collisionWorld = &tilecollision.World{Layers: layers, TileCount: 0}
}

// FrameUpdate is the first step of a frame: it ensures the scene's entity
// ordering invariant (stable merge-sort by UpdatePriority descending) is
// restored before anything reads the list this frame.
func (s *Scene) FrameUpdate() {
	s.Scene.EnsureSorted()
}

// activeViews returns the views currently marked Active, used by the
// on-screen Activity tests during Update/FixedUpdate.
func (s *Scene) activeViews() []*View {
	views := make([]*View, 0, MaxSceneViews)
	for _, v := range s.Views {
		if v != nil && v.Active {
			views = append(views, v)
		}
	}
	return views
}

// Update runs the early/mid/late passes over the scene-ordered entity
// list once per frame, per spec.md §4.5's frame description.
func (s *Scene) Update(dt float64) {
	s.FrameUpdate()
	views := s.activeViews()
	for _, v := range s.Views {
		if v != nil {
			v.advanceTween(float32(dt))
		}
	}
	s.Scene.Each(func(e *Entity) {
		if !e.shouldUpdate() {
			return
		}
		if !e.IsOnScreen(views) && e.Activity != ActivityAlways && e.Activity != ActivityNormal && e.Activity != ActivityPaused {
			return
		}
		if e.UpdateFn != nil {
			e.UpdateFn(e)
		}
	})
}

// FixedUpdate runs once every FixedStep seconds of accumulated time:
// advances tile animation, runs the global fixed-update hook, then an
// early/mid/late pass over entities (folded here into a single pass,
// since UpdateFn already encodes the phase the host wants to run).
func (s *Scene) FixedUpdate(dt float64) {
	s.fixedAccumulator += dt
	for s.fixedAccumulator >= FixedStep {
		s.fixedAccumulator -= FixedStep
		s.advanceTileAnimation()
		if s.OnGlobalFixedUpdate != nil {
			s.OnGlobalFixedUpdate()
		}
		views := s.activeViews()
		s.Scene.Each(func(e *Entity) {
			if !e.shouldUpdate() || !e.IsOnScreen(views) {
				return
			}
			if e.UpdateFn != nil {
				e.UpdateFn(e)
			}
		})
	}
}

func (s *Scene) advanceTileAnimation() {
	if !s.TileAnimationEnabled || s.TileAnimationPaused {
		return
	}
	for _, ts := range s.Tilesets {
		for _, a := range ts.Animators {
			a.Advance()
		}
	}
}

// Render draws every active view in Priority order: for each, its layers'
// draw groups (in priority order, each stably sorted by Depth) via
// RenderFn, per spec.md §4.5.
func (s *Scene) Render() {
	views := s.activeViews()
	views = stableMergeSortViews(views)
	for _, v := range views {
		if v.Is3D {
			v.SetupView3D()
		} else {
			v.SetupView2D()
		}
		for _, pl := range s.Priority {
			pl.EachGroup(func(_ int, g *DrawGroup) {
				g.Each(func(e *Entity) {
					if e.Activity == ActivityDisabled || e.Activity == ActivityNever {
						return
					}
					if !e.IsOnScreen([]*View{v}) && e.Activity != ActivityAlways {
						return
					}
					if e.RenderFn != nil {
						e.RenderFn(e)
					}
				})
			})
		}
	}
}

func stableMergeSortViews(views []*View) []*View {
	n := len(views)
	for i := 1; i < n; i++ {
		j := i
		for j > 0 && views[j-1].Priority > views[j].Priority {
			views[j-1], views[j] = views[j], views[j-1]
			j--
		}
	}
	return views
}

// AfterScene runs script GC, then applies a pending scene switch or
// restart if one was requested during this frame, per spec.md §4.5/§5.
func (s *Scene) AfterScene() (nextScene string, restart bool) {
	if s.OnGC != nil {
		s.OnGC()
	}
	next, doRestart := s.NextScene, s.DoRestart
	s.NextScene, s.DoRestart = "", false
	if next != "" || doRestart {
		s.log.Info().Str("next", next).Bool("restart", doRestart).Msg("scene transition requested")
	}
	return next, doRestart
}

// Teardown removes every entity whose Persistence is below keepAbove from
// every list/registry/draw group, per spec.md §3.6.
func (s *Scene) Teardown(keepAbove Persistence) {
	var toRemove []*Entity
	s.Scene.Each(func(e *Entity) {
		if e.Persistence < keepAbove {
			toRemove = append(toRemove, e)
		}
	})
	for _, e := range toRemove {
		s.RemoveEntity(e)
	}
}
