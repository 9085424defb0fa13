package component

// Health holds hit points. Current stays within [0, Max].
type Health struct {
	Current float64
	Max     float64
}

// Apply subtracts amount and clamps the result into [0, Max].
func (h *Health) Apply(amount float64) {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Depleted reports whether the entity has no hit points left.
func (h *Health) Depleted() bool {
	return h.Current <= 0
}

// Fraction returns Current/Max, or 0 when Max is not positive.
func (h *Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

var HealthComponent = NewComponent[Health]()

// Damage is the amount applied to a target on hostile contact or attack.
type Damage struct {
	Amount float64
}

var DamageComponent = NewComponent[Damage]()
