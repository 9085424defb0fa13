package entity

import (
	"fmt"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// NewProjectile spawns a hostile projectile travelling at vel. It is
// destroyed on player or solid contact, or when ttl runs out.
func NewProjectile(w *ecs.World, pos, vel cp.Vector, size, damage float64, ttl time.Duration) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{
		Position: pos,
		Velocity: vel,
		Scale:    cp.Vector{X: size, Y: size},
	}); err != nil {
		return 0, fmt.Errorf("projectile: add motion: %w", err)
	}
	if err := ecs.Add(w, e, component.DeadlyComponent.Kind(), &component.Deadly{Kind: component.EnemyProjectile, State: component.EnemyRun}); err != nil {
		return 0, fmt.Errorf("projectile: add deadly: %w", err)
	}
	if err := ecs.Add(w, e, component.DamageComponent.Kind(), &component.Damage{Amount: damage}); err != nil {
		return 0, fmt.Errorf("projectile: add damage: %w", err)
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Remaining: ttl}); err != nil {
		return 0, fmt.Errorf("projectile: add ttl: %w", err)
	}
	return e, nil
}
