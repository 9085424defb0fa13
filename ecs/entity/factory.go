package entity

import (
	"fmt"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/level"
	"github.com/milk9111/topdown/prefabs"
)

// Marker codes understood by the factory. Codes below TileMarkerMin are
// terrain.
const (
	MarkerContact = level.TileMarkerMin + iota
	MarkerRanged
	MarkerSwarm
	MarkerDashing
	MarkerBoss
	MarkerEatable
	MarkerSticky
)

var markerKinds = map[int]component.EnemyKind{
	MarkerContact: component.EnemyContact,
	MarkerRanged:  component.EnemyRanged,
	MarkerSwarm:   component.EnemySwarm,
	MarkerDashing: component.EnemyDashing,
	MarkerBoss:    component.EnemyBoss,
}

// Factory spawns actors from the current prefab catalog.
type Factory struct {
	Catalog      *prefabs.Catalog
	PathCooldown time.Duration
}

func (f *Factory) Player(w *ecs.World, pos cp.Vector) (ecs.Entity, error) {
	if f.Catalog == nil {
		return 0, fmt.Errorf("factory: no catalog")
	}
	return NewPlayer(w, f.Catalog.Player, pos)
}

func (f *Factory) Enemy(w *ecs.World, kind component.EnemyKind, pos cp.Vector) (ecs.Entity, error) {
	spec, ok := f.Catalog.Enemy(kind.String())
	if !ok {
		return 0, fmt.Errorf("factory: no prefab for enemy kind %s", kind)
	}
	return NewEnemy(w, spec, pos, f.PathCooldown)
}

// Marker spawns whatever a streamed tile marker stands for. It reports
// false for codes it does not know.
func (f *Factory) Marker(w *ecs.World, m level.Marker) (ecs.Entity, bool, error) {
	if kind, ok := markerKinds[m.Code]; ok {
		e, err := f.Enemy(w, kind, m.Position)
		return e, true, err
	}
	if f.Catalog == nil {
		return 0, false, fmt.Errorf("factory: no catalog")
	}
	switch m.Code {
	case MarkerEatable:
		e, err := NewEatable(w, f.Catalog.Eatable, m.Position)
		return e, true, err
	case MarkerSticky:
		e, err := NewSticky(w, f.Catalog.Sticky, m.Position)
		return e, true, err
	}
	return 0, false, nil
}
