// Package sim wires the world, level, and systems into one steppable
// simulation.
package sim

import (
	"fmt"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/config"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/ecs/entity"
	"github.com/milk9111/topdown/ecs/system"
	"github.com/milk9111/topdown/level"
	"github.com/milk9111/topdown/logging"
	"github.com/milk9111/topdown/prefabs"
	"go.uber.org/zap"
)

type Simulation struct {
	cfg     config.SimConfig
	world   *ecs.World
	level   *level.Level
	sched   *ecs.Scheduler
	factory *entity.Factory
	ai      *system.AIControllerSystem
	logger  *zap.Logger

	player ecs.Entity
	ticks  uint64
}

// New builds a simulation for lvl. Blocking tiles become merged solid
// walls; markers are spawned as the player reveals them.
func New(cfg config.SimConfig, lvl *level.Level, catalog *prefabs.Catalog, loader prefabs.Loader, logger *zap.Logger) (*Simulation, error) {
	if lvl == nil {
		return nil, fmt.Errorf("sim: nil level")
	}
	if catalog == nil {
		return nil, fmt.Errorf("sim: nil catalog")
	}
	logger = logging.OrNop(logger)

	w := ecs.NewWorld()
	walls, err := entity.AddLevelWalls(w, lvl)
	if err != nil {
		return nil, fmt.Errorf("sim: add walls: %w", err)
	}

	factory := &entity.Factory{Catalog: catalog, PathCooldown: cfg.PathCooldown}
	ai := system.NewAIControllerSystem(cfg, loader, logger.Named("enemy"))

	s := &Simulation{
		cfg:     cfg,
		world:   w,
		level:   lvl,
		factory: factory,
		ai:      ai,
		logger:  logger,
		sched: ecs.NewScheduler(
			system.NewEncounterSystem(lvl, factory, cfg.RevealRadius, logger.Named("encounter")),
			system.NewMotionSystem(),
			system.NewPathfindingSystem(lvl, cfg, logger.Named("path")),
			system.NewCollisionSystem(),
			system.NewResolverSystem(cfg, logger.Named("resolve")),
			system.NewTimerSystem(),
			system.NewPlayerControllerSystem(logger.Named("player")),
			ai,
		),
	}

	logger.Info("simulation ready",
		zap.Int("width", lvl.Width()),
		zap.Int("height", lvl.Height()),
		zap.Int("walls", len(walls)),
	)
	return s, nil
}

// SpawnPlayer places the player at pos. Only one player may exist.
func (s *Simulation) SpawnPlayer(pos cp.Vector) (ecs.Entity, error) {
	if _, ok := s.Player(); ok {
		return 0, fmt.Errorf("sim: player already spawned")
	}
	e, err := s.factory.Player(s.world, pos)
	if err != nil {
		return 0, fmt.Errorf("sim: spawn player: %w", err)
	}
	s.player = e
	return e, nil
}

// SpawnEnemy places a hostile of the given kind at pos, outside of marker
// streaming.
func (s *Simulation) SpawnEnemy(kind component.EnemyKind, pos cp.Vector) (ecs.Entity, error) {
	return s.factory.Enemy(s.world, kind, pos)
}

// Advance runs one tick with the real elapsed time since the previous
// one. Elapsed is not clamped; a negative value is treated as zero.
func (s *Simulation) Advance(elapsed time.Duration) {
	if elapsed < 0 {
		elapsed = 0
	}
	s.world.Events().Flush()
	s.sched.Update(s.world, elapsed)
	s.ticks++
}

// SetInput replaces the player's intent for the next tick.
func (s *Simulation) SetInput(in component.Input) {
	p, ok := s.Player()
	if !ok {
		return
	}
	if cur, ok := ecs.Get(s.world, p, component.InputComponent.Kind()); ok {
		*cur = in
	}
}

// SetCatalog swaps the prefab catalog used for future spawns, retunes the
// live player, and drops cached cadence scripts. Live enemies keep the
// tuning they spawned with.
func (s *Simulation) SetCatalog(catalog *prefabs.Catalog) {
	if catalog == nil {
		return
	}
	s.factory.Catalog = catalog
	s.ai.ReloadScripts()
	if e, ok := s.Player(); ok {
		if p, ok := ecs.Get(s.world, e, component.PlayerComponent.Kind()); ok {
			entity.ApplyPlayerTuning(p, catalog.Player)
		}
	}
}

// Player returns the live player entity.
func (s *Simulation) Player() (ecs.Entity, bool) {
	if s.player.Valid() && ecs.IsAlive(s.world, s.player) {
		return s.player, true
	}
	return 0, false
}

// Drain returns and clears the hook events raised by the last tick.
func (s *Simulation) Drain() []ecs.Event { return s.world.Events().Drain() }

func (s *Simulation) World() *ecs.World        { return s.world }
func (s *Simulation) Level() *level.Level      { return s.level }
func (s *Simulation) Config() config.SimConfig { return s.cfg }
func (s *Simulation) Ticks() uint64            { return s.ticks }
