package ecs

// SparseSet is a dense container of (entity, value) pairs keyed by entity.
// Values are held by pointer so references handed out by Get survive growth
// of the dense arrays. Removal swaps the last pair into the hole.
type SparseSet[T any] struct {
	dense  []Entity
	values []*T
	sparse []int
}

// Has reports whether e currently owns a value in the set.
func (s *SparseSet[T]) Has(e Entity) bool {
	if s == nil {
		return false
	}
	idx, ok := s.index(e)
	return ok && idx >= 0
}

func (s *SparseSet[T]) index(e Entity) (int, bool) {
	id := int(e.id())
	if id <= 0 || id-1 >= len(s.sparse) {
		return -1, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return -1, false
	}
	return idx, true
}

// Get returns the value for e, or nil.
func (s *SparseSet[T]) Get(e Entity) *T {
	if s == nil {
		return nil
	}
	idx, ok := s.index(e)
	if !ok {
		return nil
	}
	return s.values[idx]
}

// Insert appends a value for e. It reports false if e already has one.
func (s *SparseSet[T]) Insert(e Entity, v *T) bool {
	if s == nil || !e.Valid() || s.Has(e) {
		return false
	}
	id := int(e.id())
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
	return true
}

// Remove deletes the value for e if present.
func (s *SparseSet[T]) Remove(e Entity) bool {
	if s == nil {
		return false
	}
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

// Len returns the number of stored pairs.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Entities returns the dense entity list. The slice is owned by the set.
func (s *SparseSet[T]) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.dense
}

func (s *SparseSet[T]) has(e Entity) bool    { return s.Has(e) }
func (s *SparseSet[T]) remove(e Entity) bool { return s.Remove(e) }
