package ecs

// Event is a hook payload for external consumers (audio, effects, UI).
type Event struct {
	Type   EventType
	Entity Entity
	Other  Entity
	Amount float64
}

// EventType identifies hook events raised by the simulation.
type EventType string

const (
	EventDamaged EventType = "damaged"
	EventPickup  EventType = "pickup"
	EventDeath   EventType = "death"
	EventKilled  EventType = "killed"
	EventSpawned EventType = "spawned"
)

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Flush drops every queued event.
func (q *EventQueue) Flush() {
	if q == nil {
		return
	}
	q.items = nil
}

// CollisionEvent is a directional contact: Entity touched Other this tick.
type CollisionEvent struct {
	Entity Entity
	Other  Entity
}

// CollisionBuffer holds one tick's contacts. Unlike component containers
// it keeps several entries per entity, one per contacting partner.
type CollisionBuffer struct {
	items []CollisionEvent
}

// Push appends both directions of a contact.
func (b *CollisionBuffer) Push(a, c Entity) {
	if b == nil {
		return
	}
	b.items = append(b.items, CollisionEvent{Entity: a, Other: c}, CollisionEvent{Entity: c, Other: a})
}

// Events returns the buffered contacts in emission order.
func (b *CollisionBuffer) Events() []CollisionEvent {
	if b == nil {
		return nil
	}
	return b.items
}

// Len returns the number of buffered directional events.
func (b *CollisionBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Clear empties the buffer, keeping its capacity for the next tick.
func (b *CollisionBuffer) Clear() {
	if b == nil {
		return
	}
	b.items = b.items[:0]
}
