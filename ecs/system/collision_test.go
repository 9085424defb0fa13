package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

func contacts(w *ecs.World) map[ecs.CollisionEvent]int {
	out := make(map[ecs.CollisionEvent]int)
	for _, evt := range w.Collisions().Events() {
		out[evt]++
	}
	return out
}

func TestCollisionSystemEmitsBothDirections(t *testing.T) {
	w := ecs.NewWorld()
	a := addBox(t, w, cp.Vector{X: 0, Y: 0}, cp.Vector{X: 10, Y: 10})
	b := addBox(t, w, cp.Vector{X: 8, Y: 0}, cp.Vector{X: 10, Y: 10})
	far := addBox(t, w, cp.Vector{X: 100, Y: 0}, cp.Vector{X: 10, Y: 10})

	NewCollisionSystem().Update(w, 0)

	got := contacts(w)
	if len(w.Collisions().Events()) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(w.Collisions().Events()), w.Collisions().Events())
	}
	if got[ecs.CollisionEvent{Entity: a, Other: b}] != 1 || got[ecs.CollisionEvent{Entity: b, Other: a}] != 1 {
		t.Fatalf("missing a direction: %+v", got)
	}
	for evt := range got {
		if evt.Entity == far || evt.Other == far {
			t.Fatalf("non-overlapping entity reported: %+v", evt)
		}
		if evt.Entity == evt.Other {
			t.Fatalf("self collision reported: %+v", evt)
		}
	}
}

func TestCollisionSystemSkipsEntitiesWithoutMotion(t *testing.T) {
	w := ecs.NewWorld()
	addBox(t, w, cp.Vector{}, cp.Vector{X: 10, Y: 10})
	ghost := ecs.CreateEntity(w)
	mustAdd(t, w, ghost, component.SolidComponent.Kind(), &component.Solid{})

	NewCollisionSystem().Update(w, 0)
	if n := w.Collisions().Len(); n != 0 {
		t.Fatalf("got %d events, want 0", n)
	}
}

func TestCollisionSystemNarrowPhaseForStickyMesh(t *testing.T) {
	cases := []struct {
		name   string
		player cp.Vector
		want   int
	}{
		{"inside_diamond", cp.Vector{X: 14, Y: 0}, 2},
		{"box_corner_only", cp.Vector{X: 22, Y: 22}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			sticky := addHostile(t, w, cp.Vector{}, component.EnemyContact, 10)
			ecs.MustGet(w, sticky, component.MotionComponent.Kind()).Scale = cp.Vector{X: 40, Y: 40}
			mustAdd(t, w, sticky, component.MeshComponent.Kind(), &component.Mesh{
				Vertices: []cp.Vector{{X: 0, Y: -0.5}, {X: 0.5, Y: 0}, {X: 0, Y: 0.5}, {X: -0.5, Y: 0}},
				Indices:  []int{0, 1, 2, 0, 2, 3},
			})
			addPlayer(t, w, tc.player, 200)

			NewCollisionSystem().Update(w, 0)
			if n := w.Collisions().Len(); n != tc.want {
				t.Fatalf("got %d events, want %d", n, tc.want)
			}
		})
	}
}

func TestCollisionSystemMeshIgnoredForNonPlayers(t *testing.T) {
	w := ecs.NewWorld()
	sticky := addBox(t, w, cp.Vector{}, cp.Vector{X: 40, Y: 40})
	mustAdd(t, w, sticky, component.MeshComponent.Kind(), &component.Mesh{
		Vertices: []cp.Vector{{X: 0, Y: -0.5}, {X: 0.5, Y: 0}, {X: 0, Y: 0.5}},
		Indices:  []int{0, 1, 2},
	})
	addBox(t, w, cp.Vector{X: 20, Y: 20}, cp.Vector{X: 20, Y: 20})

	NewCollisionSystem().Update(w, 0)
	if n := w.Collisions().Len(); n != 2 {
		t.Fatalf("box overlap with a non-player should stand, got %d events", n)
	}
}
