package main

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/level"
	"github.com/milk9111/topdown/prefabs"
	"github.com/milk9111/topdown/sim"
)

const (
	screenWidth  = 960
	screenHeight = 640
)

var (
	colorFloor      = color.RGBA{R: 32, G: 32, B: 40, A: 255}
	colorHidden     = color.RGBA{R: 12, G: 12, B: 16, A: 255}
	colorWall       = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	colorPlayer     = colornames.Deepskyblue
	colorHostile    = colornames.Crimson
	colorProjectile = colornames.Orange
	colorEatable    = colornames.Limegreen
	colorAttack     = color.RGBA{R: 255, G: 255, B: 255, A: 120}
	colorSticky     = colornames.Mediumorchid
)

// viewer is the ebiten.Game that feeds input into a Simulation and draws
// its world as flat boxes.
type viewer struct {
	sim    *sim.Simulation
	logger *zap.Logger

	watcher *prefabs.Watcher
	loader  prefabs.Loader

	// maxFrame caps one Advance after a window stall. Zero passes the
	// real elapsed time through.
	maxFrame time.Duration

	last   time.Time
	events []ecs.Event
	paused bool
	quit   bool
	menu   *ebitenui.UI
}

func newViewer(s *sim.Simulation, logger *zap.Logger) *viewer {
	v := &viewer{sim: s, logger: logger}
	v.menu = newPauseMenu(v)
	return v
}

func capFrame(elapsed, limit time.Duration) time.Duration {
	if limit > 0 && elapsed > limit {
		return limit
	}
	return elapsed
}

func (v *viewer) Update() error {
	if v.watcher != nil {
		changed, err := v.watcher.Poll()
		if err != nil {
			v.logger.Warn("prefab watcher", zap.Error(err))
		}
		if len(changed) > 0 {
			v.reload(changed)
		}
	}

	now := time.Now()
	if v.last.IsZero() {
		v.last = now
	}
	elapsed := capFrame(now.Sub(v.last), v.maxFrame)
	v.last = now

	if v.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.paused = !v.paused
	}
	if v.paused {
		v.menu.Update()
		return nil
	}

	v.sim.SetInput(readInput())
	v.sim.Advance(elapsed)
	for _, evt := range v.sim.Drain() {
		v.logger.Debug("event",
			zap.String("type", string(evt.Type)),
			zap.Uint64("entity", uint64(evt.Entity)),
			zap.Float64("amount", evt.Amount),
		)
		v.events = append(v.events, evt)
	}
	if n := len(v.events); n > 6 {
		v.events = v.events[n-6:]
	}
	return nil
}

// reload rebuilds the catalog for any edit. SetCatalog also drops the
// compiled cadence scripts, so script-only edits take the same path.
func (v *viewer) reload(changed []prefabs.Change) {
	files := make([]string, 0, len(changed))
	for _, c := range changed {
		files = append(files, c.Path)
	}
	catalog, err := v.loader.LoadCatalog()
	if err != nil {
		v.logger.Warn("prefab reload failed", zap.Strings("files", files), zap.Error(err))
		return
	}
	v.sim.SetCatalog(catalog)
	v.logger.Info("prefabs reloaded", zap.Strings("files", files))
}

func (v *viewer) Draw(screen *ebiten.Image) {
	lvl := v.sim.Level()
	w := v.sim.World()

	lvl.Cells(func(c level.Cell, code int) {
		bb := lvl.CellBox(c)
		fill := colorFloor
		if !lvl.Revealed(c) {
			fill = colorHidden
		}
		if lvl.Blocking(c) {
			fill = colorWall
		}
		vector.FillRect(screen, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), fill, false)
	})

	ecs.ForEach(w, component.MotionComponent.Kind(), func(e ecs.Entity, m *component.Motion) {
		clr, stroke := entityColor(w, e)
		if clr == nil {
			return
		}
		sx, sy := math.Abs(m.Scale.X), math.Abs(m.Scale.Y)
		x := float32(m.Position.X - sx/2)
		y := float32(m.Position.Y - sy/2)
		if stroke {
			vector.StrokeRect(screen, x, y, float32(sx), float32(sy), 1, clr, false)
			return
		}
		vector.FillRect(screen, x, y, float32(sx), float32(sy), clr, false)
	})

	v.drawHUD(screen)
	if v.paused {
		v.menu.Draw(screen)
	}
}

// entityColor picks a fill for e, or a stroke for translucent volumes.
// Walls are already drawn from the grid and return nil.
func entityColor(w *ecs.World, e ecs.Entity) (color.Color, bool) {
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		if inv, ok := ecs.Get(w, e, component.InvulnerableComponent.Kind()); ok && inv.Active {
			return colorAttack, false
		}
		return colorPlayer, false
	case ecs.Has(w, e, component.AttackComponent.Kind()):
		return colorAttack, true
	case ecs.Has(w, e, component.EatableComponent.Kind()):
		return colorEatable, false
	case ecs.Has(w, e, component.MeshComponent.Kind()):
		return colorSticky, false
	case ecs.Has(w, e, component.SolidComponent.Kind()):
		return nil, false
	}
	if d, ok := ecs.Get(w, e, component.DeadlyComponent.Kind()); ok {
		if d.Kind == component.EnemyProjectile {
			return colorProjectile, false
		}
		return colorHostile, false
	}
	return nil, false
}

func (v *viewer) drawHUD(screen *ebiten.Image) {
	w := v.sim.World()
	hud := fmt.Sprintf("TPS %.0f  tick %d", ebiten.ActualTPS(), v.sim.Ticks())
	if e, ok := v.sim.Player(); ok {
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			hud += fmt.Sprintf("\nstate %s  stamina %.0f/%.0f", p.State, p.Stamina, p.MaxStamina)
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			hud += fmt.Sprintf("\nhealth %.0f/%.0f", h.Current, h.Max)
		}
		if s, ok := ecs.Get(w, e, component.ScoreComponent.Kind()); ok {
			hud += fmt.Sprintf("  score %d", s.Points)
		}
	} else {
		hud += "\nplayer down"
	}
	for _, evt := range v.events {
		hud += fmt.Sprintf("\n%s %v", evt.Type, evt.Amount)
	}
	ebitenutil.DebugPrint(screen, hud)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
