package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

func NewEatable(w *ecs.World, spec prefabs.EatableSpec, pos cp.Vector) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{Position: pos, Scale: spec.Size.Vector()}); err != nil {
		return 0, fmt.Errorf("eatable: add motion: %w", err)
	}
	if err := ecs.Add(w, e, component.EatableComponent.Kind(), &component.Eatable{Points: spec.Points}); err != nil {
		return 0, fmt.Errorf("eatable: add eatable: %w", err)
	}
	return e, nil
}

// NewSticky spawns a static hostile blob whose contact with the player is
// tested against its triangle mesh instead of its box.
func NewSticky(w *ecs.World, spec prefabs.StickySpec, pos cp.Vector) (ecs.Entity, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{
		Position: pos,
		Angle:    spec.Angle,
		Scale:    spec.Size.Vector(),
	}); err != nil {
		return 0, fmt.Errorf("sticky: add motion: %w", err)
	}

	verts := make([]cp.Vector, 0, len(spec.Vertices))
	for _, v := range spec.Vertices {
		verts = append(verts, v.Vector())
	}
	if err := ecs.Add(w, e, component.MeshComponent.Kind(), &component.Mesh{
		Vertices: verts,
		Indices:  append([]int(nil), spec.Indices...),
	}); err != nil {
		return 0, fmt.Errorf("sticky: add mesh: %w", err)
	}
	if err := ecs.Add(w, e, component.DeadlyComponent.Kind(), &component.Deadly{Kind: component.EnemyContact, State: component.EnemyIdle}); err != nil {
		return 0, fmt.Errorf("sticky: add deadly: %w", err)
	}
	if err := ecs.Add(w, e, component.DamageComponent.Kind(), &component.Damage{Amount: spec.Damage}); err != nil {
		return 0, fmt.Errorf("sticky: add damage: %w", err)
	}
	return e, nil
}
