package component

import "time"

// DeathTimer is attached when an actor dies. The entity is destroyed once
// Remaining runs out; until then it is observable as dead.
type DeathTimer struct {
	Remaining time.Duration
}

var DeathTimerComponent = NewComponent[DeathTimer]()
