package component

import (
	"time"

	"github.com/jakecoffman/cp"
)

// Path is a per-entity sequence of tile-center waypoints. Cursor indexes
// the waypoint being walked to and only moves forward.
type Path struct {
	Waypoints []cp.Vector
	Cursor    int
}

// Target returns the current waypoint.
func (p *Path) Target() (cp.Vector, bool) {
	if p == nil || p.Cursor >= len(p.Waypoints) {
		return cp.Vector{}, false
	}
	return p.Waypoints[p.Cursor], true
}

// Done reports whether every waypoint has been reached.
func (p *Path) Done() bool {
	return p == nil || p.Cursor >= len(p.Waypoints)
}

var PathComponent = NewComponent[Path]()

// Pursuit marks an actor that paths toward the player. Cooldown is the
// minimum interval between searches; Timer counts down to the next one.
type Pursuit struct {
	Cooldown time.Duration
	Timer    time.Duration
	Searches int
	Failures int
}

var PursuitComponent = NewComponent[Pursuit]()
