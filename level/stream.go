package level

import "github.com/jakecoffman/cp"

// Marker is a spawn/encounter tile surfaced by Reveal.
type Marker struct {
	Cell     Cell
	Code     int
	Position cp.Vector
}

// Reveal marks every cell within radius tiles (Chebyshev distance) of the
// given world position as revealed and returns the markers uncovered for
// the first time. Each marker is returned exactly once per level.
func (l *Level) Reveal(at cp.Vector, radius int) []Marker {
	if radius < 0 {
		return nil
	}
	center := l.WorldToGrid(at)
	var out []Marker
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			c := Cell{X: x, Y: y}
			if !l.InBounds(c) {
				continue
			}
			idx := l.index(c)
			l.revealed[idx] = true
			if l.consumed[idx] || l.tiles[idx] < TileMarkerMin {
				continue
			}
			l.consumed[idx] = true
			out = append(out, Marker{Cell: c, Code: l.tiles[idx], Position: l.TileCenter(c)})
		}
	}
	return out
}

// Revealed reports whether c has been streamed in.
func (l *Level) Revealed(c Cell) bool {
	return l.InBounds(c) && l.revealed[l.index(c)]
}

// RevealedCount returns the number of revealed cells.
func (l *Level) RevealedCount() int {
	n := 0
	for _, r := range l.revealed {
		if r {
			n++
		}
	}
	return n
}
