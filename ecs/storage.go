package ecs

// entityStore tracks entity generations and free ids.
type entityStore struct {
	gen   []generation
	free  []entityID
	alive int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		id = entityID(len(s.gen))
	}
	s.alive++
	return makeEntity(id, s.gen[id-1])
}

// destroy bumps the slot generation so stale handles stop resolving.
// Destroying a stale or unknown handle reports false and changes nothing.
func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	s.gen[e.id()-1]++
	s.free = append(s.free, e.id())
	s.alive--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.gen[id-1] == e.generation()
}
