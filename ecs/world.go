package ecs

import "github.com/milk9111/topdown/ecs/component"

// store is the type-erased view of a SparseSet the world needs for
// whole-entity operations.
type store interface {
	has(e Entity) bool
	remove(e Entity) bool
}

// World owns entities, their component containers, the per-tick collision
// buffer and the hook event queue.
type World struct {
	entities   entityStore
	stores     map[component.ComponentID]store
	order      []component.ComponentID
	collisions CollisionBuffer
	events     EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e from every container and retires the handle.
// Destroying an already destroyed entity is a no-op that reports false.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, id := range w.order {
		w.stores[id].remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// EntityCount returns the number of live entities.
func EntityCount(w *World) int {
	if w == nil {
		return 0
	}
	return w.entities.alive
}

// Collisions returns the per-tick collision event buffer.
func (w *World) Collisions() *CollisionBuffer {
	if w == nil {
		return nil
	}
	return &w.collisions
}

// Events returns the world hook event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) register(id component.ComponentID, s store) {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	w.stores[id] = s
	w.order = append(w.order, id)
}
