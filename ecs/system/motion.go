package system

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// MotionSystem integrates velocity into position. Knockback overrides
// velocity while it lasts; pursuers in the run state steer along their
// path first.
type MotionSystem struct{}

func NewMotionSystem() *MotionSystem { return &MotionSystem{} }

func (s *MotionSystem) Phase() ecs.Phase { return ecs.PhaseMotion }

func (s *MotionSystem) Update(w *ecs.World, dt time.Duration) {
	if w == nil {
		return
	}
	secs := dt.Seconds()

	ecs.ForEach(w, component.MotionComponent.Kind(), func(e ecs.Entity, m *component.Motion) {
		if kb, ok := ecs.Get(w, e, component.KnockbackComponent.Kind()); ok {
			m.Velocity = kb.Velocity()
			m.Position = m.Position.Add(m.Velocity.Mult(secs))
			kb.Remaining -= dt
			if kb.Remaining <= 0 {
				ecs.Remove(w, e, component.KnockbackComponent.Kind())
				m.Velocity = cp.Vector{}
			}
			return
		}

		if d, ok := ecs.Get(w, e, component.DeadlyComponent.Kind()); ok && d.State == component.EnemyRun {
			if en, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
				followPath(w, e, m, en.MoveSpeed, secs)
				return
			}
		}

		m.Position = m.Position.Add(m.Velocity.Mult(secs))
	})
}

// followPath steps m toward the current waypoint. A leg never overshoots:
// each axis is clamped to the remaining distance and the cursor advances
// once the waypoint is reached. Diagonal legs scale both axes by 1/√2.
func followPath(w *ecs.World, e ecs.Entity, m *component.Motion, speed, secs float64) {
	path, ok := ecs.Get(w, e, component.PathComponent.Kind())
	if !ok || path.Done() {
		m.Velocity = cp.Vector{}
		return
	}
	target, _ := path.Target()
	delta := target.Sub(m.Position)

	const eps = 1e-6
	dx, dy := sign(delta.X, eps), sign(delta.Y, eps)
	if dx == 0 && dy == 0 {
		m.Position = target
		m.Velocity = cp.Vector{}
		path.Cursor++
		return
	}

	step := speed
	if dx != 0 && dy != 0 {
		step *= math.Sqrt2 / 2
	}
	m.Velocity = cp.Vector{X: dx * step, Y: dy * step}
	if dx != 0 {
		m.SetFacingLeft(dx < 0)
	}

	move := step * secs
	m.Position.X += clampMagnitude(delta.X, move)
	m.Position.Y += clampMagnitude(delta.Y, move)

	if math.Abs(target.X-m.Position.X) <= eps && math.Abs(target.Y-m.Position.Y) <= eps {
		m.Position = target
		path.Cursor++
	}
}

func clampMagnitude(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
