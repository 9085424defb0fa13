package system

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/config"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/logging"
	"github.com/milk9111/topdown/prefabs"
	"go.uber.org/zap"
)

// enemyBehavior is the per-kind payload of the hostile state machine.
// Kinds without an attack only ever deal contact damage.
type enemyBehavior struct {
	// ranged gates the attack on AttackRange; otherwise the actor attacks
	// whenever its timer is ready and the player is in aggro range.
	ranged bool
	attack func(s *AIControllerSystem, w *ecs.World, e ecs.Entity, en *component.Enemy, m *component.Motion, target cp.Vector)
	// keepVelocity lets the attack's velocity carry through the attack.
	keepVelocity bool
}

var enemyBehaviors = map[component.EnemyKind]enemyBehavior{
	component.EnemyContact: {},
	component.EnemySwarm:   {},
	component.EnemyRanged:  {ranged: true, attack: (*AIControllerSystem).fireAimed},
	component.EnemyDashing: {ranged: true, attack: (*AIControllerSystem).startDash, keepVelocity: true},
	component.EnemyBoss:    {attack: (*AIControllerSystem).fireRing},
}

// AIControllerSystem runs the hostile state machine for every actor with
// an Enemy payload.
type AIControllerSystem struct {
	cfg    config.SimConfig
	logger *zap.Logger

	scripts prefabs.Loader
	cadence map[string]*prefabs.Cadence
	broken  map[string]bool
}

func NewAIControllerSystem(cfg config.SimConfig, scripts prefabs.Loader, logger *zap.Logger) *AIControllerSystem {
	logger = logging.OrNop(logger)
	return &AIControllerSystem{
		cfg:     cfg,
		logger:  logger,
		scripts: scripts,
		cadence: make(map[string]*prefabs.Cadence),
		broken:  make(map[string]bool),
	}
}

// ReloadScripts drops compiled cadence scripts so they are read again on
// next use.
func (s *AIControllerSystem) ReloadScripts() {
	clear(s.cadence)
	clear(s.broken)
}

func (s *AIControllerSystem) Phase() ecs.Phase { return ecs.PhaseState }

func (s *AIControllerSystem) Update(w *ecs.World, dt time.Duration) {
	if s == nil || w == nil {
		return
	}

	target, hasTarget := playerTarget(w)

	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.DeadlyComponent.Kind(), component.MotionComponent.Kind(),
		func(e ecs.Entity, en *component.Enemy, d *component.Deadly, m *component.Motion) {
			if en.AttackTimer > 0 {
				en.AttackTimer = max(en.AttackTimer-dt, 0)
			}
			if en.StateTimer > 0 {
				en.StateTimer = max(en.StateTimer-dt, 0)
			}

			behavior := enemyBehaviors[d.Kind]
			dist := math.Inf(1)
			if hasTarget {
				dist = m.Position.Distance(target)
			}

			in := enemySignals{
				KnockedBack: ecs.Has(w, e, component.KnockbackComponent.Kind()),
				HasTarget:   hasTarget,
				Distance:    dist,
				AggroRange:  en.AggroRange,
				Attacking:   en.StateTimer > 0,
			}
			if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
				in.Dead = h.Depleted()
			}
			if behavior.attack != nil && hasTarget && en.AttackTimer <= 0 {
				reach := en.AggroRange
				if behavior.ranged {
					reach = en.AttackRange
				}
				in.AttackReady = dist <= reach
			}

			prev := d.State
			if next := nextEnemyState(prev, in); next != prev && TransitionEnemy(s.logger, e, d, next) {
				s.enter(w, e, d, en, m, behavior, target)
			}

			switch d.State {
			case component.EnemyIdle, component.EnemyDead:
				m.Velocity = cp.Vector{}
			case component.EnemyAttack:
				if !behavior.keepVelocity {
					m.Velocity = cp.Vector{}
				}
			}

			if hasTarget && d.State != component.EnemyDead && d.State != component.EnemyKnockedBack {
				if dx := target.X - m.Position.X; dx != 0 {
					m.SetFacingLeft(dx < 0)
				}
			}

			if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
				anim.Clip = EnemyClip(d.State)
			}
		})
}

func (s *AIControllerSystem) enter(w *ecs.World, e ecs.Entity, d *component.Deadly, en *component.Enemy, m *component.Motion, behavior enemyBehavior, target cp.Vector) {
	switch d.State {
	case component.EnemyAttack:
		en.StateTimer = en.AttackDuration
		en.AttackTimer = en.AttackCooldown
		if behavior.attack != nil {
			behavior.attack(s, w, e, en, m, target)
		}
	case component.EnemyDead:
		m.Velocity = cp.Vector{}
		ecs.Remove(w, e, component.PathComponent.Kind())
		ecs.Remove(w, e, component.KnockbackComponent.Kind())
		if !ecs.Has(w, e, component.DeathTimerComponent.Kind()) {
			_ = ecs.Add(w, e, component.DeathTimerComponent.Kind(), &component.DeathTimer{Remaining: s.cfg.CorpseTimer})
		}
		w.Events().Push(ecs.Event{Type: ecs.EventDeath, Entity: e})
	case component.EnemyIdle:
		ecs.Remove(w, e, component.PathComponent.Kind())
	}
}

func (s *AIControllerSystem) fireAimed(w *ecs.World, e ecs.Entity, en *component.Enemy, m *component.Motion, target cp.Vector) {
	dir := target.Sub(m.Position)
	if dir.LengthSq() == 0 {
		dir = facing(m)
	}
	s.spawnProjectile(w, e, en, m.Position, dir.Normalize())
}

func (s *AIControllerSystem) startDash(w *ecs.World, e ecs.Entity, en *component.Enemy, m *component.Motion, target cp.Vector) {
	dir := target.Sub(m.Position)
	if dir.LengthSq() == 0 {
		dir = facing(m)
	}
	m.Velocity = dir.Normalize().Mult(en.DashSpeed)
	ecs.Remove(w, e, component.PathComponent.Kind())
}

// fireRing fires a ring of projectiles starting at the player's bearing.
// The ring size and the next attack delay come from the actor's cadence
// script when it has one.
func (s *AIControllerSystem) fireRing(w *ecs.World, e ecs.Entity, en *component.Enemy, m *component.Motion, target cp.Vector) {
	count := en.ProjectileCount
	if c := s.loadCadence(en.Script); c != nil {
		frac := 1.0
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			frac = h.Fraction()
		}
		interval, n, err := c.Next(frac)
		if err != nil {
			s.logger.Warn("cadence script failed", zap.String("script", en.Script), zap.Error(err))
		} else {
			en.AttackTimer = interval
			count = n
		}
	}
	if count <= 0 {
		return
	}

	base := target.Sub(m.Position).ToAngle()
	step := 2 * math.Pi / float64(count)
	for i := 0; i < count; i++ {
		s.spawnProjectile(w, e, en, m.Position, cp.ForAngle(base+step*float64(i)))
	}
}

func (s *AIControllerSystem) spawnProjectile(w *ecs.World, shooter ecs.Entity, en *component.Enemy, pos, dir cp.Vector) {
	if _, err := entity.NewProjectile(w, pos, dir.Mult(en.ProjectileSpeed), en.ProjectileSize, en.ProjectileDamage, en.ProjectileTTL); err != nil {
		s.logger.Error("spawn projectile", zap.Stringer("shooter", shooter), zap.Error(err))
	}
}

func (s *AIControllerSystem) loadCadence(name string) *prefabs.Cadence {
	if name == "" || s.broken[name] {
		return nil
	}
	if c, ok := s.cadence[name]; ok {
		return c
	}
	c, err := s.scripts.LoadCadence(name)
	if err != nil {
		s.broken[name] = true
		s.logger.Warn("cadence script unavailable, using prefab defaults", zap.String("script", name), zap.Error(err))
		return nil
	}
	s.cadence[name] = c
	return c
}

// playerTarget returns the player's position while the player can still be
// hurt.
func playerTarget(w *ecs.World) (cp.Vector, bool) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok || ecs.Has(w, player, component.DeathTimerComponent.Kind()) {
		return cp.Vector{}, false
	}
	m, ok := ecs.Get(w, player, component.MotionComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return m.Position, true
}
