// Package level is the world context the simulation reads terrain from: a
// tile grid with its tile size and world origin, plus streaming state for
// spawn markers.
package level

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Tile codes.
const (
	TileBlocking  = 0
	TileFloor     = 1
	TileMarkerMin = 3
)

var ErrEmptyGrid = errors.New("level: empty grid")

// Cell is a grid coordinate.
type Cell struct {
	X int
	Y int
}

// Add returns c offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Level is a rectangular tile grid. The tile codes are never modified;
// marker consumption is tracked alongside them.
type Level struct {
	tiles    []int
	width    int
	height   int
	tileSize cp.Vector
	origin   cp.Vector

	revealed []bool
	consumed []bool
}

// New copies rows ([y][x] tile codes) into a level. Rows must all have the
// same length and the tile size must be positive on both axes.
func New(rows [][]int, tileSize, origin cp.Vector) (*Level, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	if tileSize.X <= 0 || tileSize.Y <= 0 {
		return nil, fmt.Errorf("level: tile size must be positive, got %v", tileSize)
	}
	w := len(rows[0])
	tiles := make([]int, 0, w*len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("level: row %d has %d tiles, want %d", y, len(row), w)
		}
		tiles = append(tiles, row...)
	}
	return &Level{
		tiles:    tiles,
		width:    w,
		height:   len(rows),
		tileSize: tileSize,
		origin:   origin,
		revealed: make([]bool, len(tiles)),
		consumed: make([]bool, len(tiles)),
	}, nil
}

func (l *Level) Width() int          { return l.width }
func (l *Level) Height() int         { return l.height }
func (l *Level) TileSize() cp.Vector { return l.tileSize }
func (l *Level) Origin() cp.Vector   { return l.origin }

// Bounds returns the world-space rectangle covered by the grid.
func (l *Level) Bounds() cp.BB {
	return cp.BB{
		L: l.origin.X,
		B: l.origin.Y,
		R: l.origin.X + float64(l.width)*l.tileSize.X,
		T: l.origin.Y + float64(l.height)*l.tileSize.Y,
	}
}

// InBounds reports whether c lies on the grid.
func (l *Level) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < l.width && c.Y < l.height
}

func (l *Level) index(c Cell) int {
	return c.Y*l.width + c.X
}

// Code returns the tile code at c.
func (l *Level) Code(c Cell) (int, bool) {
	if !l.InBounds(c) {
		return 0, false
	}
	return l.tiles[l.index(c)], true
}

// Blocking reports whether c cannot be entered. Cells off the grid block.
func (l *Level) Blocking(c Cell) bool {
	code, ok := l.Code(c)
	return !ok || code == TileBlocking
}

// WorldToGrid maps a world position to the cell containing it, flooring
// toward the grid.
func (l *Level) WorldToGrid(p cp.Vector) Cell {
	return Cell{
		X: int(math.Floor((p.X - l.origin.X) / l.tileSize.X)),
		Y: int(math.Floor((p.Y - l.origin.Y) / l.tileSize.Y)),
	}
}

// TileCenter returns the world position of the center of c.
func (l *Level) TileCenter(c Cell) cp.Vector {
	return cp.Vector{
		X: l.origin.X + (float64(c.X)+0.5)*l.tileSize.X,
		Y: l.origin.Y + (float64(c.Y)+0.5)*l.tileSize.Y,
	}
}

// CellBox returns the world-space box of c.
func (l *Level) CellBox(c Cell) cp.BB {
	lo := cp.Vector{X: l.origin.X + float64(c.X)*l.tileSize.X, Y: l.origin.Y + float64(c.Y)*l.tileSize.Y}
	return cp.BB{L: lo.X, B: lo.Y, R: lo.X + l.tileSize.X, T: lo.Y + l.tileSize.Y}
}

// IsWalkable reports whether a single step from one cell to an adjacent
// cell is legal. The destination must not block, and a diagonal step also
// needs both orthogonal cells it cuts past to be open.
func (l *Level) IsWalkable(from, to Cell) bool {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return false
	}
	if l.Blocking(to) {
		return false
	}
	if dx != 0 && dy != 0 {
		return !l.Blocking(from.Add(dx, 0)) && !l.Blocking(from.Add(0, dy))
	}
	return true
}

// Cells calls fn for every cell in row-major order.
func (l *Level) Cells(fn func(c Cell, code int)) {
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			fn(Cell{X: x, Y: y}, l.tiles[y*l.width+x])
		}
	}
}
