package entity

import (
	"fmt"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

// NewEnemy spawns a hostile actor of the spec's kind. Every non-projectile
// kind pursues the player along A* paths.
func NewEnemy(w *ecs.World, spec prefabs.EnemySpec, pos cp.Vector, pathCooldown time.Duration) (ecs.Entity, error) {
	kind, err := component.ParseEnemyKind(spec.Kind)
	if err != nil {
		return 0, fmt.Errorf("enemy %s: %w", spec.Name, err)
	}
	if kind == component.EnemyProjectile {
		return 0, fmt.Errorf("enemy %s: projectiles are spawned by their shooter", spec.Name)
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.MotionComponent.Kind(), &component.Motion{
		Position: pos,
		Scale:    spec.Size.Vector(),
	}); err != nil {
		return 0, fmt.Errorf("enemy: add motion: %w", err)
	}

	if err := ecs.Add(w, entity, component.DeadlyComponent.Kind(), &component.Deadly{Kind: kind, State: component.EnemyIdle}); err != nil {
		return 0, fmt.Errorf("enemy: add deadly: %w", err)
	}

	if err := ecs.Add(w, entity, component.EnemyComponent.Kind(), EnemyFromSpec(spec)); err != nil {
		return 0, fmt.Errorf("enemy: add enemy: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{Current: spec.Health, Max: spec.Health}); err != nil {
		return 0, fmt.Errorf("enemy: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.DamageComponent.Kind(), &component.Damage{Amount: spec.Damage}); err != nil {
		return 0, fmt.Errorf("enemy: add damage: %w", err)
	}

	if err := ecs.Add(w, entity, component.PursuitComponent.Kind(), &component.Pursuit{Cooldown: pathCooldown}); err != nil {
		return 0, fmt.Errorf("enemy: add pursuit: %w", err)
	}

	if err := ecs.Add(w, entity, component.AnimationComponent.Kind(), &component.Animation{Clip: "idle"}); err != nil {
		return 0, fmt.Errorf("enemy: add animation: %w", err)
	}

	return entity, nil
}

func EnemyFromSpec(spec prefabs.EnemySpec) *component.Enemy {
	en := &component.Enemy{
		MoveSpeed:      spec.MoveSpeed,
		AggroRange:     spec.AggroRange,
		AttackRange:    spec.AttackRange,
		AttackCooldown: spec.AttackCooldown,
		AttackTimer:    spec.AttackCooldown,
		AttackDuration: spec.AttackDuration,
		DashSpeed:      spec.DashSpeed,
		Script:         spec.Script,
	}
	if p := spec.Projectile; p != nil {
		en.ProjectileSpeed = p.Speed
		en.ProjectileDamage = p.Damage
		en.ProjectileCount = p.Count
		en.ProjectileSize = p.Size
		en.ProjectileTTL = p.TTL
	}
	return en
}
