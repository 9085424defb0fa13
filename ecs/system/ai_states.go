package system

import (
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"go.uber.org/zap"
)

// leashFactor widens the aggro range for actors already pursuing, so they
// do not flicker between idle and run at the boundary.
const leashFactor = 1.5

type enemySignals struct {
	Dead        bool
	KnockedBack bool
	HasTarget   bool
	Distance    float64
	AggroRange  float64
	AttackReady bool
	Attacking   bool
}

func (in enemySignals) inAggro(pursuing bool) bool {
	if !in.HasTarget {
		return false
	}
	r := in.AggroRange
	if pursuing {
		r *= leashFactor
	}
	return in.Distance <= r
}

// nextEnemyState is the hostile transition function.
func nextEnemyState(cur component.EnemyState, in enemySignals) component.EnemyState {
	switch {
	case cur == component.EnemyDead:
		return cur
	case in.Dead:
		return component.EnemyDead
	case in.KnockedBack:
		return component.EnemyKnockedBack
	}

	switch cur {
	case component.EnemyKnockedBack:
		if in.inAggro(true) {
			return component.EnemyRun
		}
		return component.EnemyIdle
	case component.EnemyAttack:
		if in.Attacking {
			return cur
		}
	}

	if !in.HasTarget {
		return component.EnemyIdle
	}
	if in.AttackReady {
		return component.EnemyAttack
	}
	if in.inAggro(cur != component.EnemyIdle) {
		return component.EnemyRun
	}
	return component.EnemyIdle
}

var enemyTransitions = map[component.EnemyState][]component.EnemyState{
	component.EnemyIdle:        {component.EnemyRun, component.EnemyAttack, component.EnemyKnockedBack, component.EnemyDead},
	component.EnemyRun:         {component.EnemyIdle, component.EnemyAttack, component.EnemyKnockedBack, component.EnemyDead},
	component.EnemyAttack:      {component.EnemyIdle, component.EnemyRun, component.EnemyKnockedBack, component.EnemyDead},
	component.EnemyKnockedBack: {component.EnemyIdle, component.EnemyRun, component.EnemyDead},
	component.EnemyDead:        nil,
}

func EnemyTransitionAllowed(from, to component.EnemyState) bool {
	if from == to {
		return true
	}
	for _, s := range enemyTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionEnemy moves d to the next state. An illegal transition is
// logged and leaves the state untouched.
func TransitionEnemy(logger *zap.Logger, e ecs.Entity, d *component.Deadly, next component.EnemyState) bool {
	if d == nil {
		return false
	}
	if !EnemyTransitionAllowed(d.State, next) {
		if logger != nil {
			logger.Warn("illegal enemy transition",
				zap.Stringer("entity", e),
				zap.Stringer("kind", d.Kind),
				zap.Stringer("from", d.State),
				zap.Stringer("to", next),
			)
		}
		return false
	}
	d.State = next
	return true
}

var enemyClips = map[component.EnemyState]string{
	component.EnemyIdle:        "idle",
	component.EnemyRun:         "run",
	component.EnemyAttack:      "attack",
	component.EnemyDead:        "dead",
	component.EnemyKnockedBack: "hit",
}

// EnemyClip returns the animation clip for a hostile state.
func EnemyClip(s component.EnemyState) string {
	if clip, ok := enemyClips[s]; ok {
		return clip
	}
	return "idle"
}
