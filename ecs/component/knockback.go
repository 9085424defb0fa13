package component

import (
	"time"

	"github.com/jakecoffman/cp"
)

// Knockback temporarily overrides velocity along Direction. The override
// speed decays linearly from Speed to zero over Duration.
type Knockback struct {
	Direction cp.Vector
	Speed     float64
	Duration  time.Duration
	Remaining time.Duration
}

// Velocity returns the override velocity for the time left.
func (k *Knockback) Velocity() cp.Vector {
	if k.Duration <= 0 || k.Remaining <= 0 {
		return cp.Vector{}
	}
	f := float64(k.Remaining) / float64(k.Duration)
	return k.Direction.Mult(k.Speed * f)
}

var KnockbackComponent = NewComponent[Knockback]()
