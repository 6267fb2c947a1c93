package scene

import (
	"testing"

	"github.com/hatchlang/hatch/value"
)

func TestSceneAddRemoveEntityLinksAllOwners(t *testing.T) {
	s := NewScene()
	s.Priority = []*PriorityLists{{}}
	e := &Entity{Name: "Goomba", Interactable: true}
	s.AddEntity("Goomba", e, 0)

	if s.ListNamed("Goomba").Len() != 1 {
		t.Fatal("entity not linked into its class list")
	}
	if s.Scene.Len() != 1 {
		t.Fatal("entity not linked into the Scene update list")
	}
	if e.drawGroup == nil {
		t.Fatal("entity not inserted into a draw group")
	}
	if !e.active {
		t.Fatal("AddEntity did not mark the entity active")
	}

	s.RemoveEntity(e)
	if s.Scene.Len() != 0 || s.ListNamed("Goomba").Len() != 0 {
		t.Fatal("RemoveEntity left the entity linked somewhere")
	}
	if e.active {
		t.Fatal("RemoveEntity did not clear active")
	}
}

func TestSceneUpdateRunsOnlyEligibleEntities(t *testing.T) {
	s := NewScene()
	var ran []string
	mk := func(name string, act Activity) *Entity {
		e := &Entity{Name: name, Activity: act}
		e.UpdateFn = func(e *Entity) { ran = append(ran, e.Name) }
		s.AddEntity(name, e, -1)
		return e
	}
	mk("always", ActivityAlways)
	mk("disabled", ActivityDisabled)
	mk("never", ActivityNever)
	mk("paused", ActivityPaused)

	s.Update(1.0 / 60)

	want := map[string]bool{"always": true, "paused": true}
	for _, name := range ran {
		if !want[name] {
			t.Fatalf("entity %q ran but should not have", name)
		}
		delete(want, name)
	}
	if len(want) != 0 {
		t.Fatalf("expected entities did not run: %v", want)
	}
}

func TestSceneFixedUpdateAdvancesOnAccumulatedStep(t *testing.T) {
	s := NewScene()
	ticks := 0
	s.OnGlobalFixedUpdate = func() { ticks++ }

	s.FixedUpdate(FixedStep * 2.5)
	if ticks != 2 {
		t.Fatalf("ticks = %d, want 2 for 2.5 steps of accumulated time", ticks)
	}
	if s.fixedAccumulator <= 0 || s.fixedAccumulator >= FixedStep {
		t.Fatalf("leftover accumulator = %v, want in (0, FixedStep)", s.fixedAccumulator)
	}
}

func TestSceneAfterSceneConsumesPendingSwitch(t *testing.T) {
	s := NewScene()
	gcRan := false
	s.OnGC = func() { gcRan = true }
	s.NextScene = "Level2"
	s.DoRestart = true

	next, restart := s.AfterScene()
	if next != "Level2" || !restart {
		t.Fatalf("AfterScene() = (%q, %v), want (Level2, true)", next, restart)
	}
	if !gcRan {
		t.Fatal("AfterScene did not run OnGC")
	}
	if s.NextScene != "" || s.DoRestart {
		t.Fatal("AfterScene did not clear the pending switch")
	}
}

func TestSceneTeardownKeepsEntitiesAbovePersistence(t *testing.T) {
	s := NewScene()
	sceneOnly := &Entity{Name: "temp", Persistence: PersistNone}
	gameWide := &Entity{Name: "player", Persistence: PersistGame}
	s.AddEntity("temp", sceneOnly, -1)
	s.AddEntity("player", gameWide, -1)

	s.Teardown(PersistGame)

	if s.Scene.Len() != 1 {
		t.Fatalf("Scene.Len() = %d, want 1 after teardown", s.Scene.Len())
	}
	found := false
	s.Scene.Each(func(e *Entity) {
		if e.Name == "player" {
			found = true
		}
	})
	if !found {
		t.Fatal("Teardown removed an entity at or above keepAbove")
	}
}

func TestWithResolverFiltersActiveInteractableAndMapsScript(t *testing.T) {
	s := NewScene()
	class := &value.Class{Name: "Goomba"}
	inst := value.FromObj(value.NewInstance(class))

	live := &Entity{Name: "live", Interactable: true, Script: inst}
	s.AddEntity("Goomba", live, -1)

	notInteractable := &Entity{Name: "deco", Interactable: false, Script: inst}
	s.AddEntity("Goomba", notInteractable, -1)

	resolve := s.WithResolver()
	members, ok := resolve("Goomba")
	if !ok {
		t.Fatal("WithResolver did not recognize a registered class list")
	}
	if len(members) != 1 {
		t.Fatalf("len(members) = %d, want 1 (non-interactable entity should be filtered)", len(members))
	}

	if _, ok := resolve("NoSuchClass"); ok {
		t.Fatal("WithResolver reported ok for an unregistered name")
	}
}
