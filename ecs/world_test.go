package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/starfolio/common"
	"github.com/milk9111/starfolio/ecs/component"
)

func spawnProp(t *testing.T, w *World, role string, visible bool) Entity {
	t.Helper()
	e := CreateEntity(w)
	if err := Add(w, e, component.TransformComponent.Kind(), &component.Transform{Scale: common.Uniform(1)}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := Add(w, e, component.VisibilityComponent.Kind(), &component.Visibility{Visible: visible}); err != nil {
		t.Fatalf("add visibility: %v", err)
	}
	if role != "" {
		if err := Add(w, e, component.SceneObjectComponent.Kind(), &component.SceneObject{Role: role}); err != nil {
			t.Fatalf("add scene object: %v", err)
		}
	}
	return e
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, spawnProp(t, w, "ship", true))
			}
			if got := len(Entities(w)); got != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, got)
			}
			if c.destroyIndex < 0 {
				return
			}
			e := ents[c.destroyIndex]
			if !DestroyEntity(w, e) {
				t.Fatalf("destroy %s failed", e)
			}
			if IsAlive(w, e) {
				t.Fatalf("%s still alive", e)
			}
			if Has(w, e, component.TransformComponent.Kind()) {
				t.Fatalf("components of %s should be gone", e)
			}
			if DestroyEntity(w, e) {
				t.Fatalf("second destroy should report false")
			}
			if got := len(Entities(w)); got != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, got)
			}
		})
	}
}

func TestComponentAddGetRemove(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	kind := component.TransformComponent.Kind()

	tests := []struct {
		name  string
		run   func() error
		check func(t *testing.T)
	}{
		{
			name: "add",
			run: func() error {
				return Add(w, e, kind, &component.Transform{Position: common.V3(1, 2, 3)})
			},
			check: func(t *testing.T) {
				tr, ok := Get(w, e, kind)
				if !ok || tr.Position != common.V3(1, 2, 3) {
					t.Fatalf("got %+v ok=%v", tr, ok)
				}
			},
		},
		{
			name: "replace",
			run: func() error {
				return Add(w, e, kind, &component.Transform{Position: common.V3(4, 5, 6)})
			},
			check: func(t *testing.T) {
				tr, _ := Get(w, e, kind)
				if tr.Position != common.V3(4, 5, 6) {
					t.Fatalf("replace did not take: %+v", tr)
				}
			},
		},
		{
			name: "mutate_through_pointer",
			run: func() error {
				tr, _ := Get(w, e, kind)
				tr.Scale = common.Uniform(2)
				return nil
			},
			check: func(t *testing.T) {
				tr, _ := Get(w, e, kind)
				if tr.Scale != common.Uniform(2) {
					t.Fatalf("pointer write lost: %+v", tr)
				}
			},
		},
		{
			name: "remove",
			run: func() error {
				if !Remove(w, e, kind) {
					return errors.New("remove reported false")
				}
				return nil
			},
			check: func(t *testing.T) {
				if Has(w, e, kind) {
					t.Fatalf("component still present")
				}
				if Remove(w, e, kind) {
					t.Fatalf("second remove should report false")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); err != nil {
				t.Fatalf("run: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add[component.Transform](w, e, component.TransformComponent.Kind(), nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	var zero component.ComponentKind[component.Transform]
	if err := Add(w, e, zero, &component.Transform{}); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	DestroyEntity(w, e)
	if err := Add(w, e, component.TransformComponent.Kind(), &component.Transform{}); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestQueries(t *testing.T) {
	w := NewWorld()
	ship := spawnProp(t, w, "ship", true)
	hidden := spawnProp(t, w, "about", false)
	deco := spawnProp(t, w, "", true)
	dead := spawnProp(t, w, "contact", true)
	DestroyEntity(w, dead)

	t.Run("for_each", func(t *testing.T) {
		seen := map[Entity]bool{}
		ForEach(w, component.TransformComponent.Kind(), func(e Entity, _ *component.Transform) { seen[e] = true })
		if len(seen) != 3 || !seen[ship] || !seen[hidden] || !seen[deco] {
			t.Fatalf("ForEach saw %v", seen)
		}
	})

	t.Run("for_each2_intersection", func(t *testing.T) {
		var roles []string
		ForEach2(w, component.SceneObjectComponent.Kind(), component.VisibilityComponent.Kind(), func(e Entity, so *component.SceneObject, _ *component.Visibility) {
			roles = append(roles, so.Role)
		})
		if len(roles) != 2 {
			t.Fatalf("expected ship and about, got %v", roles)
		}
	})

	t.Run("for_each3_visible_props", func(t *testing.T) {
		var visible []Entity
		ForEach3(w, component.TransformComponent.Kind(), component.VisibilityComponent.Kind(), component.SceneObjectComponent.Kind(),
			func(e Entity, _ *component.Transform, v *component.Visibility, _ *component.SceneObject) {
				if v.Visible {
					visible = append(visible, e)
				}
			})
		if len(visible) != 1 || visible[0] != ship {
			t.Fatalf("expected only the ship, got %v", visible)
		}
	})

	t.Run("missing_store", func(t *testing.T) {
		called := false
		ForEach2(w, component.TransformComponent.Kind(), component.CameraComponent.Kind(), func(Entity, *component.Transform, *component.Camera) { called = true })
		if called {
			t.Fatalf("no entity has a camera")
		}
	})
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	w := NewWorld()
	old := spawnProp(t, w, "ship", true)
	DestroyEntity(w, old)
	reused := CreateEntity(w)

	if reused.id() != old.id() {
		t.Fatalf("expected slot reuse, got %s after %s", reused, old)
	}
	if reused == old || IsAlive(w, old) {
		t.Fatalf("stale handle %s must not alias %s", old, reused)
	}
	if _, ok := Get(w, old, component.TransformComponent.Kind()); ok {
		t.Fatalf("stale handle must not see components")
	}
	if err := Add(w, old, component.TransformComponent.Kind(), &component.Transform{}); err == nil {
		t.Fatalf("adding to a stale handle should fail")
	}
}

func TestSparseSetRemoveKeepsOthers(t *testing.T) {
	var s SparseSet
	for id := 1; id <= 4; id++ {
		s.Set(id, id*10)
	}
	if !s.Remove(2) || s.Has(2) || s.Len() != 3 {
		t.Fatalf("remove 2 failed")
	}
	for _, id := range []int{1, 3, 4} {
		if got, _ := s.Get(id).(int); got != id*10 {
			t.Fatalf("Get(%d) = %v", id, s.Get(id))
		}
	}
	if !s.Remove(4) || s.Get(4) != nil {
		t.Fatalf("removing the last element failed")
	}
	s.Set(9, 90)
	if got, _ := s.Get(9).(int); got != 90 {
		t.Fatalf("Get(9) = %v", s.Get(9))
	}
}

func TestFirstAndEvents(t *testing.T) {
	w := NewWorld()
	if _, ok := First(w, component.CameraTagComponent.Kind()); ok {
		t.Fatalf("empty world has no camera")
	}
	e := CreateEntity(w)
	if err := Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	got, ok := First(w, component.CameraTagComponent.Kind())
	if !ok || got != e {
		t.Fatalf("First = %v ok=%v, want %v", got, ok, e)
	}

	w.Events().Push(Event{Type: "transition"})
	if w.Events().Len() != 1 {
		t.Fatalf("expected one queued event")
	}
	w.Update()
	if w.Events().Len() != 0 {
		t.Fatalf("undrained events should be dropped after Update")
	}
}

type recordSystem struct {
	name string
	log  *[]string
}

func (r recordSystem) Update(w *World) { *r.log = append(*r.log, r.name) }

func TestSystemsRunInOrder(t *testing.T) {
	w := NewWorld()
	var log []string
	w.AddSystem(recordSystem{"scroll", &log})
	w.AddSystem(nil)
	w.AddSystem(recordSystem{"animation", &log})
	w.Update()
	w.Update()
	want := []string{"scroll", "animation", "scroll", "animation"}
	if len(log) != len(want) {
		t.Fatalf("log = %v", log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
	if w.systems.Len() != 2 {
		t.Fatalf("nil systems must be ignored")
	}
}
