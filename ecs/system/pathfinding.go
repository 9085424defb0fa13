package system

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/config"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/level"
	"github.com/milk9111/topdown/logging"
	"github.com/milk9111/topdown/nav"
	"go.uber.org/zap"
)

// PathfindingSystem refreshes pursuit paths toward the player. A pursuer
// searches again only once its cooldown has run out and it stands on the
// center of its tile, so a path never changes mid-step.
type PathfindingSystem struct {
	level  *level.Level
	cfg    config.SimConfig
	logger *zap.Logger
}

func NewPathfindingSystem(lvl *level.Level, cfg config.SimConfig, logger *zap.Logger) *PathfindingSystem {
	logger = logging.OrNop(logger)
	return &PathfindingSystem{level: lvl, cfg: cfg, logger: logger}
}

func (s *PathfindingSystem) Phase() ecs.Phase { return ecs.PhasePathing }

func (s *PathfindingSystem) Update(w *ecs.World, dt time.Duration) {
	if s == nil || w == nil || s.level == nil {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	goal := ecs.MustGet(w, player, component.MotionComponent.Kind()).Position

	ecs.ForEach3(w, component.PursuitComponent.Kind(), component.DeadlyComponent.Kind(), component.MotionComponent.Kind(),
		func(e ecs.Entity, pursuit *component.Pursuit, deadly *component.Deadly, m *component.Motion) {
			if pursuit.Timer > 0 {
				pursuit.Timer -= dt
				if pursuit.Timer < 0 {
					pursuit.Timer = 0
				}
			}
			if deadly.State != component.EnemyRun || pursuit.Timer > 0 {
				return
			}
			if !s.centered(m.Position) {
				s.recenter(w, e, m.Position)
				return
			}

			pursuit.Timer = pursuit.Cooldown
			pursuit.Searches++

			waypoints := nav.FindPath(s.level, m.Position, goal, s.cfg.SearchLimit)
			if len(waypoints) == 0 {
				pursuit.Failures++
				ecs.Remove(w, e, component.PathComponent.Kind())
				s.logger.Debug("no path to player",
					zap.Stringer("entity", e),
					zap.Int("failures", pursuit.Failures),
				)
				return
			}

			// The actor already stands on the start cell's center.
			cursor := 0
			if s.level.WorldToGrid(waypoints[0]) == s.level.WorldToGrid(m.Position) {
				cursor = 1
			}
			if path, ok := ecs.Get(w, e, component.PathComponent.Kind()); ok {
				path.Waypoints = waypoints
				path.Cursor = cursor
				return
			}
			_ = ecs.Add(w, e, component.PathComponent.Kind(), &component.Path{Waypoints: waypoints, Cursor: cursor})
		})
}

// recenter gives an off-center actor with nothing left to walk a one-leg
// path back to its tile center, e.g. after knockback or a failed search.
func (s *PathfindingSystem) recenter(w *ecs.World, e ecs.Entity, p cp.Vector) {
	if path, ok := ecs.Get(w, e, component.PathComponent.Kind()); ok && !path.Done() {
		return
	}
	center := s.level.TileCenter(s.level.WorldToGrid(p))
	if path, ok := ecs.Get(w, e, component.PathComponent.Kind()); ok {
		path.Waypoints = append(path.Waypoints[:0], center)
		path.Cursor = 0
		return
	}
	_ = ecs.Add(w, e, component.PathComponent.Kind(), &component.Path{Waypoints: []cp.Vector{center}})
}

// centered reports whether p sits on its tile's center within
// CenterEpsilon on both axes.
func (s *PathfindingSystem) centered(p cp.Vector) bool {
	c := s.level.TileCenter(s.level.WorldToGrid(p))
	return math.Abs(c.X-p.X) <= s.cfg.CenterEpsilon && math.Abs(c.Y-p.Y) <= s.cfg.CenterEpsilon
}
