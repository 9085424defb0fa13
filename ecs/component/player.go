package component

import (
	"time"

	"github.com/jakecoffman/cp"
)

// PlayerState is the player's logical state.
type PlayerState int

const (
	PlayerIdle PlayerState = iota
	PlayerRun
	PlayerAttack
	PlayerDash
	PlayerDead
)

func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerRun:
		return "run"
	case PlayerAttack:
		return "attack"
	case PlayerDash:
		return "dash"
	case PlayerDead:
		return "dead"
	}
	return "unknown"
}

// Player holds tuning and runtime resources for the controllable actor.
// Stamina and DashCooldownTimer tick every frame regardless of State.
type Player struct {
	State PlayerState

	MoveSpeed float64

	DashSpeed         float64
	DashDuration      time.Duration
	DashCooldown      time.Duration
	DashCooldownTimer time.Duration
	DashCost          float64
	DashDirection     cp.Vector

	Stamina      float64
	MaxStamina   float64
	StaminaRegen float64 // per second

	AttackDuration time.Duration
	AttackDamage   float64
	AttackReach    float64
	AttackSize     cp.Vector
	AttackHitbox   time.Duration

	// StateTimer counts down the active Attack or Dash.
	StateTimer time.Duration
}

var PlayerComponent = NewComponent[Player]()
