package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/milk9111/topdown/config"
	"github.com/milk9111/topdown/level"
	"github.com/milk9111/topdown/logging"
	"github.com/milk9111/topdown/prefabs"
	"github.com/milk9111/topdown/sim"
)

func main() {
	configPath := flag.String("config", "", "TOML config file (defaults apply when empty)")
	headless := flag.Bool("headless", false, "run without a window")
	ticks := flag.Int("ticks", 600, "ticks to run in headless mode")
	profileMode := flag.String("profile", "", "write a cpu or mem profile to the working directory")
	maxFrame := flag.Duration("max-frame", 0, "cap on the elapsed time fed to one step in the window, 0 = uncapped")
	flag.Parse()

	if err := run(*configPath, *headless, *ticks, *profileMode, *maxFrame); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, headless bool, ticks int, profileMode string, maxFrame time.Duration) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run", uuid.NewString()))

	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", profileMode)
	}

	loader := prefabs.Loader{Dir: cfg.Prefabs.Dir}
	catalog, err := loader.LoadCatalog()
	if err != nil {
		return err
	}

	codes, err := level.FromRows(arenaRows...)
	if err != nil {
		return err
	}
	lvl, err := level.New(codes, cfg.Sim.TileSize(), cfg.Sim.Origin())
	if err != nil {
		return err
	}

	s, err := sim.New(cfg.Sim, lvl, catalog, loader, logger)
	if err != nil {
		return err
	}
	if _, err := s.SpawnPlayer(lvl.TileCenter(arenaSpawn)); err != nil {
		return err
	}

	if headless {
		return runHeadless(s, ticks, logger)
	}

	game := newViewer(s, logger)
	game.maxFrame = maxFrame
	if cfg.Prefabs.Watch {
		w, err := prefabs.NewWatcher(cfg.Prefabs.Dir, filepath.Join(cfg.Prefabs.Dir, "scripts"))
		if err != nil {
			logger.Warn("prefab hot reload disabled", zap.Error(err))
		} else {
			defer w.Close()
			game.watcher = w
			game.loader = loader
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("topdown arena")
	return ebiten.RunGame(game)
}

// runHeadless steps the simulation at a fixed 60Hz and logs a summary.
func runHeadless(s *sim.Simulation, ticks int, logger *zap.Logger) error {
	const step = time.Second / 60
	start := time.Now()
	var events int
	for i := 0; i < ticks; i++ {
		s.Advance(step)
		events += len(s.Drain())
		if _, ok := s.Player(); !ok {
			logger.Info("player died", zap.Int("tick", i))
			break
		}
	}
	logger.Info("headless run finished",
		zap.Uint64("ticks", s.Ticks()),
		zap.Int("events", events),
		zap.Duration("wall", time.Since(start)),
	)
	return nil
}
