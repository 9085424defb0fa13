package system

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/logging"
	"go.uber.org/zap"
)

// PlayerControllerSystem drives the player state machine from Input and
// converts the resulting state into velocity, dashes, and attack hitboxes.
type PlayerControllerSystem struct {
	logger *zap.Logger
}

func NewPlayerControllerSystem(logger *zap.Logger) *PlayerControllerSystem {
	logger = logging.OrNop(logger)
	return &PlayerControllerSystem{logger: logger}
}

func (s *PlayerControllerSystem) Phase() ecs.Phase { return ecs.PhaseState }

func (s *PlayerControllerSystem) Update(w *ecs.World, dt time.Duration) {
	if s == nil || w == nil {
		return
	}
	secs := dt.Seconds()

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.MotionComponent.Kind(), component.InputComponent.Kind(),
		func(e ecs.Entity, p *component.Player, m *component.Motion, in *component.Input) {
			tickPlayerResources(p, dt, secs)

			move := in.Move
			if move.LengthSq() > 1 {
				move = move.Normalize()
			}
			moving := move.LengthSq() > 0

			signals := playerSignals{
				Moving:    moving,
				Attack:    in.Attack,
				Dash:      in.Dash,
				CanDash:   p.DashCooldownTimer <= 0 && p.Stamina >= p.DashCost,
				Dying:     ecs.Has(w, e, component.DeathTimerComponent.Kind()),
				TimerDone: p.StateTimer <= 0,
			}
			in.Attack = false
			in.Dash = false

			if p.State != component.PlayerDead && move.X != 0 {
				m.SetFacingLeft(move.X < 0)
			}

			prev := p.State
			if next := nextPlayerState(prev, signals); next != prev && TransitionPlayer(s.logger, e, p, next) {
				s.enter(w, e, p, m, move)
			}

			if !ecs.Has(w, e, component.KnockbackComponent.Kind()) {
				m.Velocity = playerVelocity(p, move)
			}

			if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
				anim.Clip = PlayerClip(p.State)
			}
		})
}

// tickPlayerResources runs the countdowns that are independent of state.
func tickPlayerResources(p *component.Player, dt time.Duration, secs float64) {
	if p.DashCooldownTimer > 0 {
		p.DashCooldownTimer = max(p.DashCooldownTimer-dt, 0)
	}
	if p.StateTimer > 0 {
		p.StateTimer = max(p.StateTimer-dt, 0)
	}
	if p.State != component.PlayerDead && p.StaminaRegen > 0 {
		p.Stamina = math.Min(p.MaxStamina, p.Stamina+p.StaminaRegen*secs)
	}
}

func (s *PlayerControllerSystem) enter(w *ecs.World, e ecs.Entity, p *component.Player, m *component.Motion, move cp.Vector) {
	switch p.State {
	case component.PlayerAttack:
		p.StateTimer = p.AttackDuration
		dir := facing(m)
		offset := dir.Mult(p.AttackReach + math.Abs(m.Scale.X)/2)
		if _, err := entity.NewAttackHitbox(w, m.Position.Add(offset), p.AttackSize, p.AttackDamage, p.AttackHitbox); err != nil {
			s.logger.Error("spawn attack hitbox", zap.Stringer("entity", e), zap.Error(err))
		}
	case component.PlayerDash:
		p.StateTimer = p.DashDuration
		p.Stamina = math.Max(0, p.Stamina-p.DashCost)
		p.DashCooldownTimer = p.DashCooldown
		if move.LengthSq() > 0 {
			p.DashDirection = move.Normalize()
		} else {
			p.DashDirection = facing(m)
		}
	case component.PlayerDead:
		p.StateTimer = 0
		m.Velocity = cp.Vector{}
		s.logger.Info("player entered dead state", zap.Stringer("entity", e))
	default:
		p.StateTimer = 0
	}
}

func playerVelocity(p *component.Player, move cp.Vector) cp.Vector {
	switch p.State {
	case component.PlayerRun:
		return move.Mult(p.MoveSpeed)
	case component.PlayerDash:
		return p.DashDirection.Mult(p.DashSpeed)
	}
	return cp.Vector{}
}

// facing is the unit x direction encoded by the sign of scale.
func facing(m *component.Motion) cp.Vector {
	if m.FacingLeft() {
		return cp.Vector{X: -1}
	}
	return cp.Vector{X: 1}
}
