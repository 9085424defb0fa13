package component

import "time"

// Invulnerable blocks repeat damage while Active. The timer counts down
// every tick and clears Active when it reaches zero.
type Invulnerable struct {
	Active bool
	Timer  time.Duration
}

var InvulnerableComponent = NewComponent[Invulnerable]()
