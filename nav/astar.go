// Package nav computes tile paths for pursuing actors.
package nav

import (
	"container/heap"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/topdown/level"
)

// Step costs in tile units. Diagonal steps are deliberately cheaper than
// cardinal ones; this is a movement-feel constant, not a distance.
const (
	CardinalCost = 1.0
	DiagonalCost = 0.5
)

var directions = [8]level.Cell{
	{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

// TileUnit is the world length of one tile unit: the mean tile side.
func TileUnit(l *level.Level) float64 {
	s := l.TileSize()
	return (s.X + s.Y) / 2
}

// StepCost returns the world cost of moving between adjacent cells.
func StepCost(l *level.Level, a, b level.Cell) float64 {
	if a.X != b.X && a.Y != b.Y {
		return DiagonalCost * TileUnit(l)
	}
	return CardinalCost * TileUnit(l)
}

// Heuristic is the octile distance between two cells in world units,
// using the per-axis tile size.
func Heuristic(l *level.Level, a, b level.Cell) float64 {
	s := l.TileSize()
	dx := math.Abs(float64(a.X-b.X)) * s.X
	dy := math.Abs(float64(a.Y-b.Y)) * s.Y
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

// Search is the outcome of a single A* run.
type Search struct {
	Cells    []level.Cell
	Expanded int
	Limited  bool
}

// FindCells searches from start to goal. An empty result means the goal
// is unreachable or the expansion limit (limit <= 0 disables it) was hit.
func FindCells(l *level.Level, start, goal level.Cell, limit int) Search {
	if l == nil || !l.InBounds(start) || !l.InBounds(goal) {
		return Search{}
	}

	n := l.Width() * l.Height()
	parent := make([]int, n)
	gScore := make([]float64, n)
	closed := make([]bool, n)
	for i := range parent {
		parent[i] = -1
		gScore[i] = math.Inf(1)
	}

	index := func(c level.Cell) int { return c.Y*l.Width() + c.X }
	arrive := math.Min(l.TileSize().X, l.TileSize().Y) / 2

	open := &openSet{}
	startIdx := index(start)
	gScore[startIdx] = 0
	heap.Push(open, &openItem{cell: start, f: Heuristic(l, start, goal)})

	var res Search
	seq := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*openItem)
		curIdx := index(cur.cell)
		if closed[curIdx] {
			continue
		}
		closed[curIdx] = true
		res.Expanded++

		if Heuristic(l, cur.cell, goal) < arrive {
			res.Cells = backtrack(parent, curIdx, l.Width())
			return res
		}
		if limit > 0 && res.Expanded >= limit {
			res.Limited = true
			return res
		}

		for _, d := range directions {
			next := cur.cell.Add(d.X, d.Y)
			if !l.IsWalkable(cur.cell, next) {
				continue
			}
			idx := index(next)
			if closed[idx] {
				continue
			}
			g := gScore[curIdx] + StepCost(l, cur.cell, next)
			if g >= gScore[idx] {
				continue
			}
			gScore[idx] = g
			parent[idx] = curIdx
			seq++
			heap.Push(open, &openItem{cell: next, f: g + Heuristic(l, next, goal), seq: seq})
		}
	}
	return res
}

// FindPath converts world positions to cells, searches, and returns the
// tile-center waypoints from start to goal. Nil means no path.
func FindPath(l *level.Level, from, to cp.Vector, limit int) []cp.Vector {
	if l == nil {
		return nil
	}
	res := FindCells(l, l.WorldToGrid(from), l.WorldToGrid(to), limit)
	return Waypoints(l, res.Cells)
}

// Waypoints maps cells to their world-space tile centers.
func Waypoints(l *level.Level, cells []level.Cell) []cp.Vector {
	if len(cells) == 0 {
		return nil
	}
	out := make([]cp.Vector, 0, len(cells))
	for _, c := range cells {
		out = append(out, l.TileCenter(c))
	}
	return out
}

func backtrack(parent []int, goalIdx, width int) []level.Cell {
	path := make([]level.Cell, 0, 32)
	for cur := goalIdx; cur != -1; cur = parent[cur] {
		path = append(path, level.Cell{X: cur % width, Y: cur / width})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type openItem struct {
	cell  level.Cell
	f     float64
	seq   int
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f == o[j].f {
		return o[i].seq < o[j].seq
	}
	return o[i].f < o[j].f
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
