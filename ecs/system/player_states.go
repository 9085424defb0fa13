package system

import (
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"go.uber.org/zap"
)

// playerSignals is everything the player state machine reads in one tick.
type playerSignals struct {
	Moving    bool
	Attack    bool
	Dash      bool
	CanDash   bool
	Dying     bool
	TimerDone bool
}

// nextPlayerState is the player transition function. It has no side
// effects; entering a state is handled by the controller.
func nextPlayerState(cur component.PlayerState, in playerSignals) component.PlayerState {
	if cur == component.PlayerDead {
		return cur
	}
	if in.Dying {
		return component.PlayerDead
	}
	if in.Attack && cur != component.PlayerAttack {
		return component.PlayerAttack
	}
	if in.Dash && in.CanDash && (cur == component.PlayerIdle || cur == component.PlayerRun) {
		return component.PlayerDash
	}
	if (cur == component.PlayerAttack || cur == component.PlayerDash) && !in.TimerDone {
		return cur
	}
	if in.Moving {
		return component.PlayerRun
	}
	return component.PlayerIdle
}

var playerTransitions = map[component.PlayerState][]component.PlayerState{
	component.PlayerIdle:   {component.PlayerRun, component.PlayerAttack, component.PlayerDash, component.PlayerDead},
	component.PlayerRun:    {component.PlayerIdle, component.PlayerAttack, component.PlayerDash, component.PlayerDead},
	component.PlayerAttack: {component.PlayerIdle, component.PlayerRun, component.PlayerDead},
	component.PlayerDash:   {component.PlayerIdle, component.PlayerRun, component.PlayerAttack, component.PlayerDead},
	component.PlayerDead:   nil,
}

// PlayerTransitionAllowed reports whether the player may move from one
// state to another. Staying in place is always allowed.
func PlayerTransitionAllowed(from, to component.PlayerState) bool {
	if from == to {
		return true
	}
	for _, s := range playerTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionPlayer moves p to the next state. An illegal transition is
// logged and leaves the state untouched.
func TransitionPlayer(logger *zap.Logger, e ecs.Entity, p *component.Player, next component.PlayerState) bool {
	if p == nil {
		return false
	}
	if !PlayerTransitionAllowed(p.State, next) {
		if logger != nil {
			logger.Warn("illegal player transition",
				zap.Stringer("entity", e),
				zap.Stringer("from", p.State),
				zap.Stringer("to", next),
			)
		}
		return false
	}
	p.State = next
	return true
}

var playerClips = map[component.PlayerState]string{
	component.PlayerIdle:   "idle",
	component.PlayerRun:    "run",
	component.PlayerAttack: "attack",
	component.PlayerDash:   "dash",
	component.PlayerDead:   "dead",
}

// PlayerClip returns the animation clip for a player state.
func PlayerClip(s component.PlayerState) string {
	if clip, ok := playerClips[s]; ok {
		return clip
	}
	return "idle"
}
