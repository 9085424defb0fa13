package system

import (
	"time"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/level"
	"github.com/milk9111/topdown/logging"
	"go.uber.org/zap"
)

// EncounterSystem streams the level in around the player and spawns each
// marker it uncovers exactly once.
type EncounterSystem struct {
	level   *level.Level
	factory *entity.Factory
	radius  int
	logger  *zap.Logger
}

func NewEncounterSystem(lvl *level.Level, factory *entity.Factory, radius int, logger *zap.Logger) *EncounterSystem {
	logger = logging.OrNop(logger)
	return &EncounterSystem{level: lvl, factory: factory, radius: radius, logger: logger}
}

func (s *EncounterSystem) Phase() ecs.Phase { return ecs.PhaseSetup }

func (s *EncounterSystem) Update(w *ecs.World, _ time.Duration) {
	if s == nil || w == nil || s.level == nil || s.factory == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	m, ok := ecs.Get(w, player, component.MotionComponent.Kind())
	if !ok {
		return
	}

	for _, marker := range s.level.Reveal(m.Position, s.radius) {
		e, known, err := s.factory.Marker(w, marker)
		switch {
		case err != nil:
			s.logger.Error("spawn marker",
				zap.Int("code", marker.Code),
				zap.Int("x", marker.Cell.X),
				zap.Int("y", marker.Cell.Y),
				zap.Error(err),
			)
		case !known:
			s.logger.Warn("unknown marker code",
				zap.Int("code", marker.Code),
				zap.Int("x", marker.Cell.X),
				zap.Int("y", marker.Cell.Y),
			)
		default:
			w.Events().Push(ecs.Event{Type: ecs.EventSpawned, Entity: e, Amount: float64(marker.Code)})
			s.logger.Debug("marker spawned", zap.Stringer("entity", e), zap.Int("code", marker.Code))
		}
	}
}
