package component

import "github.com/jakecoffman/cp"

// Motion is the spatial state of an entity. Scale doubles as the collision
// box size; a negative Scale.X means the entity faces left.
type Motion struct {
	Position cp.Vector
	Velocity cp.Vector
	Angle    float64
	Scale    cp.Vector
}

// FacingLeft reports the facing encoded in the sign of Scale.X.
func (m *Motion) FacingLeft() bool {
	return m.Scale.X < 0
}

// SetFacingLeft flips Scale.X to encode facing without changing size.
func (m *Motion) SetFacingLeft(left bool) {
	if (m.Scale.X < 0) != left {
		m.Scale.X = -m.Scale.X
	}
}

var MotionComponent = NewComponent[Motion]()
