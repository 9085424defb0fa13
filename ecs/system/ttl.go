package system

import (
	"time"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// TimerSystem counts down every lifecycle timer and destroys entities whose
// death timer, TTL, or attack window has run out.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem { return &TimerSystem{} }

func (s *TimerSystem) Phase() ecs.Phase { return ecs.PhaseState }

func (s *TimerSystem) Update(w *ecs.World, dt time.Duration) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(_ ecs.Entity, inv *component.Invulnerable) {
		if !inv.Active {
			return
		}
		inv.Timer -= dt
		if inv.Timer <= 0 {
			inv.Timer = 0
			inv.Active = false
		}
	})

	ecs.ForEach(w, component.DeathTimerComponent.Kind(), func(e ecs.Entity, timer *component.DeathTimer) {
		timer.Remaining -= dt
		if timer.Remaining <= 0 {
			w.Events().Push(ecs.Event{Type: ecs.EventKilled, Entity: e})
			ecs.DestroyEntity(w, e)
		}
	})

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Remaining -= dt
		if ttl.Remaining <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})

	ecs.ForEach(w, component.AttackComponent.Kind(), func(e ecs.Entity, atk *component.Attack) {
		atk.Remaining -= dt
		if atk.HasHit || atk.Remaining <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})
}
