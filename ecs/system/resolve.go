package system

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/config"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/logging"
	"go.uber.org/zap"
)

// capability is the set of roles an entity plays in collision response.
type capability uint16

const (
	capPlayer capability = 1 << iota
	capHealth
	capHostile
	capProjectile
	capEatable
	capSolid
	capAttack
	capMoving
)

func (c capability) has(want capability) bool { return c&want == want }

func capabilities(w *ecs.World, e ecs.Entity) capability {
	var c capability
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		c |= capPlayer
	}
	if ecs.Has(w, e, component.HealthComponent.Kind()) {
		c |= capHealth
	}
	if d, ok := ecs.Get(w, e, component.DeadlyComponent.Kind()); ok {
		if d.Kind == component.EnemyProjectile {
			c |= capProjectile
		}
		if d.State != component.EnemyDead {
			c |= capHostile
		}
	}
	if ecs.Has(w, e, component.EatableComponent.Kind()) {
		c |= capEatable
	}
	if ecs.Has(w, e, component.SolidComponent.Kind()) {
		c |= capSolid
	}
	if ecs.Has(w, e, component.AttackComponent.Kind()) {
		c |= capAttack
	}
	// Only actors are pushed out of walls; static props and projectiles
	// are not.
	if c&capPlayer != 0 || ecs.Has(w, e, component.EnemyComponent.Kind()) {
		c |= capMoving
	}
	return c
}

type resolveRule struct {
	name  string
	self  capability
	other capability
	apply func(s *ResolverSystem, w *ecs.World, e, other ecs.Entity)
}

// resolveRules is evaluated in order for every directional event. Every
// matching rule fires; a rule that destroys an entity ends the event.
var resolveRules = []resolveRule{
	{name: "hit", self: capPlayer | capHealth, other: capHostile, apply: (*ResolverSystem).hitPlayer},
	{name: "pickup", self: capPlayer, other: capEatable, apply: (*ResolverSystem).pickup},
	{name: "projectile_wall", self: capProjectile, other: capSolid, apply: (*ResolverSystem).projectileWall},
	{name: "strike", self: capAttack, other: capHostile | capHealth, apply: (*ResolverSystem).strike},
	{name: "push_out", self: capMoving, other: capSolid, apply: (*ResolverSystem).pushOut},
}

// ResolverSystem turns the tick's collision events into damage, pickups,
// destruction, and wall push-out, then clears the event buffer.
type ResolverSystem struct {
	cfg    config.SimConfig
	logger *zap.Logger
}

func NewResolverSystem(cfg config.SimConfig, logger *zap.Logger) *ResolverSystem {
	logger = logging.OrNop(logger)
	return &ResolverSystem{cfg: cfg, logger: logger}
}

func (s *ResolverSystem) Phase() ecs.Phase { return ecs.PhaseResolve }

func (s *ResolverSystem) Update(w *ecs.World, _ time.Duration) {
	if s == nil || w == nil {
		return
	}
	buf := w.Collisions()
	defer buf.Clear()

	for _, evt := range buf.Events() {
		for _, rule := range resolveRules {
			if !ecs.IsAlive(w, evt.Entity) || !ecs.IsAlive(w, evt.Other) {
				break
			}
			if !capabilities(w, evt.Entity).has(rule.self) || !capabilities(w, evt.Other).has(rule.other) {
				continue
			}
			rule.apply(s, w, evt.Entity, evt.Other)
		}
	}
}

func (s *ResolverSystem) hitPlayer(w *ecs.World, player, hostile ecs.Entity) {
	deadly := ecs.MustGet(w, hostile, component.DeadlyComponent.Kind())
	if deadly.Kind == component.EnemyProjectile {
		defer ecs.DestroyEntity(w, hostile)
	}

	if ecs.Has(w, player, component.DeathTimerComponent.Kind()) {
		return
	}
	inv, ok := ecs.Get(w, player, component.InvulnerableComponent.Kind())
	if ok && inv.Active {
		return
	}

	amount := 0.0
	if dmg, ok := ecs.Get(w, hostile, component.DamageComponent.Kind()); ok {
		amount = dmg.Amount
	}
	health := ecs.MustGet(w, player, component.HealthComponent.Kind())
	health.Apply(amount)

	if ok {
		inv.Active = true
		inv.Timer = s.cfg.Invulnerability
	} else {
		_ = ecs.Add(w, player, component.InvulnerableComponent.Kind(), &component.Invulnerable{Active: true, Timer: s.cfg.Invulnerability})
	}

	w.Events().Push(ecs.Event{Type: ecs.EventDamaged, Entity: player, Other: hostile, Amount: amount})
	s.logger.Debug("player damaged",
		zap.Stringer("player", player),
		zap.Stringer("source", deadly.Kind),
		zap.Float64("amount", amount),
		zap.Float64("health", health.Current),
	)

	motion := ecs.MustGet(w, player, component.MotionComponent.Kind())
	if health.Depleted() {
		_ = ecs.Add(w, player, component.DeathTimerComponent.Kind(), &component.DeathTimer{Remaining: s.cfg.DeathTimer})
		motion.Velocity = cp.Vector{}
		ecs.Remove(w, player, component.KnockbackComponent.Kind())
		w.Events().Push(ecs.Event{Type: ecs.EventDeath, Entity: player, Other: hostile})
		s.logger.Info("player died", zap.Stringer("player", player), zap.Stringer("killer", deadly.Kind))
		return
	}

	if hm, ok := ecs.Get(w, hostile, component.MotionComponent.Kind()); ok {
		s.knockback(w, player, motion.Position.Sub(hm.Position))
	}
}

func (s *ResolverSystem) pickup(w *ecs.World, player, item ecs.Entity) {
	if ecs.Has(w, player, component.DeathTimerComponent.Kind()) {
		return
	}
	points := ecs.MustGet(w, item, component.EatableComponent.Kind()).Points
	if score, ok := ecs.Get(w, player, component.ScoreComponent.Kind()); ok {
		score.Points += points
	}
	ecs.DestroyEntity(w, item)
	w.Events().Push(ecs.Event{Type: ecs.EventPickup, Entity: player, Other: item, Amount: float64(points)})
}

func (s *ResolverSystem) projectileWall(w *ecs.World, projectile, _ ecs.Entity) {
	ecs.DestroyEntity(w, projectile)
}

func (s *ResolverSystem) strike(w *ecs.World, attack, target ecs.Entity) {
	atk := ecs.MustGet(w, attack, component.AttackComponent.Kind())
	if atk.HasHit {
		return
	}
	amount := 0.0
	if dmg, ok := ecs.Get(w, attack, component.DamageComponent.Kind()); ok {
		amount = dmg.Amount
	}
	health := ecs.MustGet(w, target, component.HealthComponent.Kind())
	health.Apply(amount)
	atk.HasHit = true

	w.Events().Push(ecs.Event{Type: ecs.EventDamaged, Entity: target, Other: attack, Amount: amount})
	if health.Depleted() {
		w.Events().Push(ecs.Event{Type: ecs.EventKilled, Entity: target, Other: attack})
		s.logger.Debug("hostile killed", zap.Stringer("entity", target))
		ecs.DestroyEntity(w, target)
		return
	}

	am := ecs.MustGet(w, attack, component.MotionComponent.Kind())
	if tm, ok := ecs.Get(w, target, component.MotionComponent.Kind()); ok {
		s.knockback(w, target, tm.Position.Sub(am.Position))
	}
}

// pushOut moves e out of the solid along the axis of lesser overlap, by the
// overlap plus PushEpsilon. Velocity is left alone so the actor can slide.
func (s *ResolverSystem) pushOut(w *ecs.World, e, solid ecs.Entity) {
	m := ecs.MustGet(w, e, component.MotionComponent.Kind())
	sm := ecs.MustGet(w, solid, component.MotionComponent.Kind())

	a, b := motionBox(m), motionBox(sm)
	if !boxesOverlap(a, b) {
		// An earlier event this tick already moved e clear.
		return
	}
	ox, oy := overlapExtents(a, b)
	if ox < oy {
		if m.Position.X < sm.Position.X {
			m.Position.X -= ox + s.cfg.PushEpsilon
		} else {
			m.Position.X += ox + s.cfg.PushEpsilon
		}
		return
	}
	if m.Position.Y < sm.Position.Y {
		m.Position.Y -= oy + s.cfg.PushEpsilon
	} else {
		m.Position.Y += oy + s.cfg.PushEpsilon
	}
}

// knockback starts or restarts a decaying velocity override along dir.
func (s *ResolverSystem) knockback(w *ecs.World, e ecs.Entity, dir cp.Vector) {
	if s.cfg.KnockbackDuration <= 0 || s.cfg.KnockbackSpeed <= 0 {
		return
	}
	if dir.LengthSq() == 0 {
		dir = cp.Vector{X: 1}
	}
	kb := component.Knockback{
		Direction: dir.Normalize(),
		Speed:     s.cfg.KnockbackSpeed,
		Duration:  s.cfg.KnockbackDuration,
		Remaining: s.cfg.KnockbackDuration,
	}
	if cur, ok := ecs.Get(w, e, component.KnockbackComponent.Kind()); ok {
		*cur = kb
		return
	}
	_ = ecs.Add(w, e, component.KnockbackComponent.Kind(), &kb)
}
