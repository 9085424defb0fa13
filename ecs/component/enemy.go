package component

import (
	"fmt"
	"strings"
	"time"
)

// EnemyKind selects a hostile actor's behaviour.
type EnemyKind int

const (
	EnemyContact EnemyKind = iota
	EnemyRanged
	EnemyProjectile
	EnemySwarm
	EnemyDashing
	EnemyBoss
)

var enemyKindNames = [...]string{
	EnemyContact:    "contact",
	EnemyRanged:     "ranged",
	EnemyProjectile: "projectile",
	EnemySwarm:      "swarm",
	EnemyDashing:    "dashing",
	EnemyBoss:       "boss",
}

func (k EnemyKind) String() string {
	if k >= 0 && int(k) < len(enemyKindNames) {
		return enemyKindNames[k]
	}
	return "unknown"
}

// ParseEnemyKind maps a prefab name to its kind.
func ParseEnemyKind(s string) (EnemyKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range enemyKindNames {
		if n == name {
			return EnemyKind(k), nil
		}
	}
	return 0, fmt.Errorf("component: unknown enemy kind %q", s)
}

// EnemyState is a hostile actor's logical state.
type EnemyState int

const (
	EnemyIdle EnemyState = iota
	EnemyRun
	EnemyAttack
	EnemyDead
	EnemyKnockedBack
)

func (s EnemyState) String() string {
	switch s {
	case EnemyIdle:
		return "idle"
	case EnemyRun:
		return "run"
	case EnemyAttack:
		return "attack"
	case EnemyDead:
		return "dead"
	case EnemyKnockedBack:
		return "knocked_back"
	}
	return "unknown"
}

// Deadly marks a hostile: touching the player deals the entity's Damage.
type Deadly struct {
	Kind  EnemyKind
	State EnemyState
}

var DeadlyComponent = NewComponent[Deadly]()

// Enemy is the tuning and timer payload of a non-projectile hostile.
type Enemy struct {
	MoveSpeed   float64
	AggroRange  float64
	AttackRange float64

	// AttackTimer counts down to the next allowed attack.
	AttackCooldown time.Duration
	AttackTimer    time.Duration
	// StateTimer counts down an active attack (dash length, fire windup).
	AttackDuration time.Duration
	StateTimer     time.Duration

	DashSpeed float64

	ProjectileSpeed  float64
	ProjectileDamage float64
	ProjectileCount  int
	ProjectileSize   float64
	ProjectileTTL    time.Duration

	// Script names a cadence script consulted when the attack timer resets.
	Script string
}

var EnemyComponent = NewComponent[Enemy]()
