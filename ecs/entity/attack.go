package entity

import (
	"fmt"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// NewAttackHitbox spawns a player attack box centered at pos.
func NewAttackHitbox(w *ecs.World, pos, size cp.Vector, damage float64, lifetime time.Duration) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{Position: pos, Scale: size}); err != nil {
		return 0, fmt.Errorf("attack: add motion: %w", err)
	}
	if err := ecs.Add(w, e, component.AttackComponent.Kind(), &component.Attack{Remaining: lifetime}); err != nil {
		return 0, fmt.Errorf("attack: add attack: %w", err)
	}
	if err := ecs.Add(w, e, component.DamageComponent.Kind(), &component.Damage{Amount: damage}); err != nil {
		return 0, fmt.Errorf("attack: add damage: %w", err)
	}
	return e, nil
}
