package ecs

import "strconv"

// Entity is an opaque handle: a slot id in the low 32 bits and the slot's
// generation in the high 32 bits. Destroying an entity bumps its slot's
// generation before the slot is recycled, so a handle held across a
// despawn (a pursuit target, a projectile's owner) stops resolving instead
// of aliasing whatever reuses the slot. The zero Entity is never issued.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String formats e as "<id>v<generation>", e.g. "7v2" for the third
// occupant of slot 7.
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

// Valid reports whether e was issued by a world. It says nothing about
// liveness; use IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() > 0
}
