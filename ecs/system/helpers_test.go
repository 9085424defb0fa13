package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/config"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

func testSimConfig() config.SimConfig {
	return config.Default().Sim
}

func addBox(t *testing.T, w *ecs.World, pos, size cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{Position: pos, Scale: size}); err != nil {
		t.Fatalf("add motion: %v", err)
	}
	return e
}

func addPlayer(t *testing.T, w *ecs.World, pos cp.Vector, hp float64) ecs.Entity {
	t.Helper()
	e := addBox(t, w, pos, cp.Vector{X: 20, Y: 20})
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.HealthComponent.Kind(), &component.Health{Current: hp, Max: 200})
	mustAdd(t, w, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{})
	mustAdd(t, w, e, component.ScoreComponent.Kind(), &component.Score{})
	return e
}

func addHostile(t *testing.T, w *ecs.World, pos cp.Vector, kind component.EnemyKind, damage float64) ecs.Entity {
	t.Helper()
	e := addBox(t, w, pos, cp.Vector{X: 20, Y: 20})
	mustAdd(t, w, e, component.DeadlyComponent.Kind(), &component.Deadly{Kind: kind, State: component.EnemyRun})
	mustAdd(t, w, e, component.DamageComponent.Kind(), &component.Damage{Amount: damage})
	return e
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}
