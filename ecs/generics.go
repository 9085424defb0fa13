package ecs

import (
	"fmt"

	"github.com/milk9111/topdown/ecs/component"
)

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *SparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if s, ok := w.stores[kind.ID()]; ok {
		return s.(*SparseSet[T])
	}
	if !create {
		return nil
	}
	s := &SparseSet[T]{}
	w.register(kind.ID(), s)
	return s
}

// Add attaches value to e. It fails if e already holds a component of kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("%w: %s", component.ErrEntityNotAlive, e)
	}
	if !storeFor(w, kind, true).Insert(e, value) {
		return fmt.Errorf("%w: %s kind %d", component.ErrComponentExists, e, kind.ID())
	}
	return nil
}

// Get returns a mutable reference to e's component of kind.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	v := storeFor(w, kind, false).Get(e)
	return v, v != nil
}

// MustGet is Get for components the caller's setup guarantees. A missing
// component is a setup bug and panics.
func MustGet[T any](w *World, e Entity, kind component.ComponentKind[T]) *T {
	v, ok := Get(w, e, kind)
	if !ok {
		panic(fmt.Sprintf("ecs: entity %s missing required component %d", e, kind.ID()))
	}
	return v
}

// Has reports whether e holds a component of kind. It never fails.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return storeFor(w, kind, false).Has(e)
}

// Remove detaches e's component of kind. Absent components are a no-op.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return storeFor(w, kind, false).Remove(e)
}

// Count returns the number of entities holding kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	return storeFor(w, kind, false).Len()
}

// Query returns a snapshot of the entities holding kind, in container order.
func Query[T any](w *World, kind component.ComponentKind[T]) []Entity {
	s := storeFor(w, kind, false)
	if s == nil || s.Len() == 0 {
		return nil
	}
	return append([]Entity(nil), s.Entities()...)
}

// First returns the first entity holding kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s == nil || s.Len() == 0 {
		return 0, false
	}
	return s.Entities()[0], true
}

// ForEach visits every entity holding kind in container order. The visit
// runs over a snapshot, so fn may add, remove or destroy freely; entities
// removed before their turn are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeFor(w, kind, false)
	if s == nil || s.Len() == 0 {
		return
	}
	for _, e := range append([]Entity(nil), s.Entities()...) {
		if v := s.Get(e); v != nil {
			fn(e, v)
		}
	}
}

// ForEach2 visits entities holding both kinds, driven by the first kind.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sb := storeFor(w, kb, false)
	if sb == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		if b := sb.Get(e); b != nil {
			fn(e, a, b)
		}
	})
}

// ForEach3 visits entities holding all three kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sc := storeFor(w, kc, false)
	if sc == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c := sc.Get(e); c != nil {
			fn(e, a, b, c)
		}
	})
}
