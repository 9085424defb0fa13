package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
)

func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec, pos cp.Vector) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.MotionComponent.Kind(), &component.Motion{
		Position: pos,
		Scale:    spec.Size.Vector(),
	}); err != nil {
		return 0, fmt.Errorf("player: add motion: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), PlayerFromSpec(spec)); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), &component.Health{Current: spec.Health, Max: spec.Health}); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.InvulnerableComponent.Kind(), &component.Invulnerable{}); err != nil {
		return 0, fmt.Errorf("player: add invulnerable: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, entity, component.ScoreComponent.Kind(), &component.Score{}); err != nil {
		return 0, fmt.Errorf("player: add score: %w", err)
	}

	if err := ecs.Add(w, entity, component.AnimationComponent.Kind(), &component.Animation{Clip: "idle"}); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}

	return entity, nil
}

// PlayerFromSpec builds the Player component with full stamina.
func PlayerFromSpec(spec prefabs.PlayerSpec) *component.Player {
	return &component.Player{
		State:          component.PlayerIdle,
		MoveSpeed:      spec.MoveSpeed,
		DashSpeed:      spec.DashSpeed,
		DashDuration:   spec.DashDuration,
		DashCooldown:   spec.DashCooldown,
		DashCost:       spec.DashCost,
		Stamina:        spec.Stamina,
		MaxStamina:     spec.Stamina,
		StaminaRegen:   spec.StaminaRegen,
		AttackDuration: spec.Attack.Duration,
		AttackDamage:   spec.Attack.Damage,
		AttackReach:    spec.Attack.Reach,
		AttackSize:     spec.Attack.Size.Vector(),
		AttackHitbox:   spec.Attack.Hitbox,
	}
}

// ApplyPlayerTuning copies tuning from spec onto an existing player,
// keeping its runtime state and resources.
func ApplyPlayerTuning(p *component.Player, spec prefabs.PlayerSpec) {
	tuned := PlayerFromSpec(spec)
	tuned.State = p.State
	tuned.StateTimer = p.StateTimer
	tuned.DashCooldownTimer = p.DashCooldownTimer
	tuned.DashDirection = p.DashDirection
	tuned.Stamina = min(p.Stamina, tuned.MaxStamina)
	*p = *tuned
}
