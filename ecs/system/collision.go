package system

import (
	"time"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
)

// CollisionSystem finds every pair of touching entities and records both
// directions of each contact. It has no other side effect.
type CollisionSystem struct {
	entities []ecs.Entity
	motions  []*component.Motion
}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

func (s *CollisionSystem) Phase() ecs.Phase { return ecs.PhaseDetect }

func (s *CollisionSystem) Update(w *ecs.World, _ time.Duration) {
	if s == nil || w == nil {
		return
	}

	s.entities = s.entities[:0]
	s.motions = s.motions[:0]
	ecs.ForEach(w, component.MotionComponent.Kind(), func(e ecs.Entity, m *component.Motion) {
		s.entities = append(s.entities, e)
		s.motions = append(s.motions, m)
	})

	// Pairwise broad phase. Fine at arena scale; a spatial hash is the
	// next step if entity counts grow.
	buf := w.Collisions()
	for i := 0; i < len(s.entities); i++ {
		bi := motionBox(s.motions[i])
		for j := i + 1; j < len(s.entities); j++ {
			if !boxesOverlap(bi, motionBox(s.motions[j])) {
				continue
			}
			if !narrowPhase(w, s.entities[i], s.motions[i], s.entities[j], s.motions[j]) {
				continue
			}
			buf.Push(s.entities[i], s.entities[j])
		}
	}
}

// narrowPhase refines a box overlap between a sticky mesh and the player.
// Every other pairing is decided by the boxes alone.
func narrowPhase(w *ecs.World, a ecs.Entity, am *component.Motion, b ecs.Entity, bm *component.Motion) bool {
	if mesh, ok := ecs.Get(w, a, component.MeshComponent.Kind()); ok && ecs.Has(w, b, component.PlayerTagComponent.Kind()) {
		return meshOverlapsBox(mesh, am, motionBox(bm))
	}
	if mesh, ok := ecs.Get(w, b, component.MeshComponent.Kind()); ok && ecs.Has(w, a, component.PlayerTagComponent.Kind()) {
		return meshOverlapsBox(mesh, bm, motionBox(am))
	}
	return true
}
