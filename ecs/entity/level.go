package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/level"
)

// AddLevelWalls turns blocking tiles into Solid box entities. Adjacent
// blocking tiles are merged greedily into rectangles (widest run first,
// then as many full rows as fit) to keep the pairwise scan small.
func AddLevelWalls(w *ecs.World, lvl *level.Level) ([]ecs.Entity, error) {
	if lvl == nil {
		return nil, nil
	}
	width, height := lvl.Width(), lvl.Height()
	visited := make([]bool, width*height)
	index := func(x, y int) int { return y*width + x }
	blocking := func(x, y int) bool {
		return !visited[index(x, y)] && lvl.Blocking(level.Cell{X: x, Y: y})
	}

	var walls []ecs.Entity
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !blocking(x, y) {
				continue
			}

			maxW := 0
			for x2 := x; x2 < width && blocking(x2, y); x2++ {
				maxW++
			}

			maxH := 1
			for y2 := y + 1; y2 < height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+maxW; x2++ {
					if !blocking(x2, y2) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				maxH++
			}

			for yy := y; yy < y+maxH; yy++ {
				for xx := x; xx < x+maxW; xx++ {
					visited[index(xx, yy)] = true
				}
			}

			lo := lvl.CellBox(level.Cell{X: x, Y: y})
			hi := lvl.CellBox(level.Cell{X: x + maxW - 1, Y: y + maxH - 1})
			e, err := NewWall(w, cp.BB{L: lo.L, B: lo.B, R: hi.R, T: hi.T})
			if err != nil {
				return walls, err
			}
			walls = append(walls, e)
		}
	}
	return walls, nil
}

// NewWall creates a Solid entity covering box.
func NewWall(w *ecs.World, box cp.BB) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.MotionComponent.Kind(), &component.Motion{
		Position: cp.Vector{X: (box.L + box.R) / 2, Y: (box.B + box.T) / 2},
		Scale:    cp.Vector{X: box.R - box.L, Y: box.T - box.B},
	}); err != nil {
		return 0, fmt.Errorf("wall: add motion: %w", err)
	}
	if err := ecs.Add(w, e, component.SolidComponent.Kind(), &component.Solid{}); err != nil {
		return 0, fmt.Errorf("wall: add solid: %w", err)
	}
	return e, nil
}
