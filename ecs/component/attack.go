package component

import "time"

// Attack marks a player attack hitbox. Its box comes from the entity's
// Motion and its strength from Damage. It expires when Remaining runs out
// or right after its first hit.
type Attack struct {
	Remaining time.Duration
	HasHit    bool
}

var AttackComponent = NewComponent[Attack]()
